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

// Package llm wraps the external generative-model collaborator. The
// collaborator returns free-form text with no structural guarantee;
// callers must not trust its shape.
package llm

import (
	"context"

	"github.com/your-org/launchpage/internal/prompt"
)

// Client abstracts the generative model so the pipeline can be tested
// without network access.
type Client interface {
	// Complete sends one prompt and returns the model's raw text
	// output. A transport-level failure is returned as-is; callers
	// decide whether it is fatal.
	Complete(ctx context.Context, p prompt.Prompt) (string, error)
}

// Settings holds the read-only collaborator configuration.
type Settings struct {
	APIKey      string
	Endpoint    string
	Model       string
	MaxTokens   int
	Temperature float32
}
