// Copyright 2025 Launchpage Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main provides the launchpage service. It generates complete
// single-file landing pages for token projects from a short brief,
// validated against quality rules before they are returned.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "launchpage",
		Short: "AI landing page generation service",
		Long: "Launchpage turns a project brief into a complete, self-contained " +
			"HTML landing page. Pages are generated by a language model, checked " +
			"against quality rules, and replaced by a deterministic template when " +
			"the model cannot produce an acceptable page.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
