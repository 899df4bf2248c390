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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
openai:
  apikey: sk-test-key
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %s", cfg.OpenAI.Model)
	}
	if cfg.Generation.MaxAttempts != 3 {
		t.Errorf("expected default max attempts 3, got %d", cfg.Generation.MaxAttempts)
	}
	if cfg.Generation.MaxTokens != 8192 {
		t.Errorf("expected default max tokens 8192, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfigFile(t, `
openai:
  apikey: sk-test-key
  model: gpt-4o-mini
generation:
  max_attempts: 5
  temperature: 0.3
server:
  port: "9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("expected model gpt-4o-mini, got %s", cfg.OpenAI.Model)
	}
	if cfg.Generation.MaxAttempts != 5 {
		t.Errorf("expected max attempts 5, got %d", cfg.Generation.MaxAttempts)
	}
	if cfg.Generation.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %f", cfg.Generation.Temperature)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, `
openai:
  apikey: sk-from-file
`)

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("expected env var to override file value, got %s", cfg.OpenAI.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug from env, got %s", cfg.Logging.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing api key",
			content: "server:\n  port: \"8080\"\n",
			wantErr: "openai.apikey",
		},
		{
			name:    "zero max attempts",
			content: "openai:\n  apikey: sk-x\ngeneration:\n  max_attempts: 0\n",
			wantErr: "generation.max_attempts",
		},
		{
			name:    "temperature out of range",
			content: "openai:\n  apikey: sk-x\ngeneration:\n  temperature: 3.5\n",
			wantErr: "generation.temperature",
		},
		{
			name:    "invalid log level",
			content: "openai:\n  apikey: sk-x\nlogging:\n  level: verbose\n",
			wantErr: "logging.level",
		},
		{
			name:    "invalid log format",
			content: "openai:\n  apikey: sk-x\nlogging:\n  format: xml\n",
			wantErr: "logging.format",
		},
	}

	t.Setenv("OPENAI_API_KEY", "")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error to mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadWithoutValidation(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: \"8080\"\n")

	cfg, err := LoadWithOptions(LoadOptions{ConfigPath: path, ValidateRequired: false})
	if err != nil {
		t.Fatalf("expected load to succeed without validation, got: %v", err)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Errorf("expected empty API key, got %s", cfg.OpenAI.APIKey)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestMaskSensitiveValues(t *testing.T) {
	cfg := &Config{OpenAI: OpenAIConfig{APIKey: "sk-abcdef1234567890"}}

	masked := cfg.MaskSensitiveValues()

	if masked.OpenAI.APIKey == cfg.OpenAI.APIKey {
		t.Error("expected API key to be masked")
	}
	if !strings.HasPrefix(masked.OpenAI.APIKey, "sk-abcde") {
		t.Errorf("expected first 8 characters preserved, got %s", masked.OpenAI.APIKey)
	}
	if !strings.Contains(masked.OpenAI.APIKey, "*") {
		t.Errorf("expected masked characters, got %s", masked.OpenAI.APIKey)
	}
	if cfg.OpenAI.APIKey != "sk-abcdef1234567890" {
		t.Error("expected original config to be unchanged")
	}
}
