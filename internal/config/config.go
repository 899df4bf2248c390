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

// Package config loads and validates the process configuration. The
// configuration is constructed once at startup and passed into
// constructors; nothing reads it implicitly inside deep logic.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Generation GenerationConfig `mapstructure:"generation"`
	Sites      SitesConfig      `mapstructure:"sites"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OpenAIConfig contains the generative-model collaborator settings.
type OpenAIConfig struct {
	APIKey   string `mapstructure:"apikey"`
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// GenerationConfig contains pipeline settings.
type GenerationConfig struct {
	MaxAttempts    int     `mapstructure:"max_attempts"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float64 `mapstructure:"temperature"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// SitesConfig contains generated-site storage configuration.
type SitesConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed for field '%s': %s", e.Field, e.Message)
}

// LoadOptions contains options for configuration loading.
type LoadOptions struct {
	ConfigPath       string
	ValidateRequired bool
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over config file values.
func Load(configPath string) (*Config, error) {
	return LoadWithOptions(LoadOptions{
		ConfigPath:       configPath,
		ValidateRequired: true,
	})
}

// LoadWithOptions loads configuration with additional options.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := setConfigFile(v, opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to set config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("LAUNCHPAGE")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error if env vars are set
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setEnvironmentMappings(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if opts.ValidateRequired {
		if err := validateConfig(&config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o")

	v.SetDefault("generation.max_attempts", 3)
	v.SetDefault("generation.max_tokens", 8192)
	v.SetDefault("generation.temperature", 0.7)
	v.SetDefault("generation.timeout_seconds", 120)

	v.SetDefault("sites.db_path", "./sites.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// setConfigFile sets the configuration file path with fallback logic.
// A missing file is tolerated when no explicit path was requested,
// since every setting can come from the environment.
func setConfigFile(v *viper.Viper, configPath string) error {
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return fmt.Errorf("config file specified by CONFIG_PATH does not exist: %s", envPath)
		}
		v.SetConfigFile(envPath)
		return nil
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	return nil
}

// setEnvironmentMappings sets explicit environment variable mappings
// for the conventional, unprefixed variable names.
func setEnvironmentMappings(v *viper.Viper) {
	envMappings := map[string]string{
		"OPENAI_API_KEY":  "openai.apikey",
		"OPENAI_ENDPOINT": "openai.endpoint",
		"OPENAI_MODEL":    "openai.model",
		"PORT":            "server.port",
		"SITES_DB_PATH":   "sites.db_path",
		"LOG_LEVEL":       "logging.level",
		"LOG_FORMAT":      "logging.format",
		"LOG_OUTPUT":      "logging.output",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			v.Set(configKey, value)
		}
	}
}

// validateConfig validates the configuration for required fields and
// valid values, collecting every violation before returning.
func validateConfig(config *Config) error {
	var errs []ValidationError

	if config.OpenAI.APIKey == "" {
		errs = append(errs, ValidationError{
			Field:   "openai.apikey",
			Message: "OpenAI API key is required. Set via config file or OPENAI_API_KEY environment variable",
		})
	}

	if config.OpenAI.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "openai.model",
			Message: "model name is required",
		})
	}

	if config.Generation.MaxAttempts < 1 {
		errs = append(errs, ValidationError{
			Field:   "generation.max_attempts",
			Message: "max_attempts must be at least 1",
		})
	}

	if config.Generation.MaxTokens <= 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.max_tokens",
			Message: "max_tokens must be greater than 0",
		})
	}

	if config.Generation.Temperature < 0 || config.Generation.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "generation.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if config.Generation.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "generation.timeout_seconds",
			Message: "timeout_seconds must be greater than 0",
		})
	}

	if config.Sites.DBPath == "" {
		errs = append(errs, ValidationError{
			Field:   "sites.db_path",
			Message: "site database path is required",
		})
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, config.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("log level must be one of: %s", strings.Join(validLogLevels, ", ")),
		})
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, config.Logging.Format) {
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("log format must be one of: %s", strings.Join(validLogFormats, ", ")),
		})
	}

	if len(errs) > 0 {
		var messages []string
		for _, err := range errs {
			messages = append(messages, err.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(messages, "\n"))
	}

	return nil
}

// MaskSensitiveValues returns a copy of the config with sensitive
// values masked for safe logging.
func (c *Config) MaskSensitiveValues() *Config {
	masked := *c
	if masked.OpenAI.APIKey != "" {
		masked.OpenAI.APIKey = maskValue(masked.OpenAI.APIKey)
	}
	return &masked
}

// maskValue masks sensitive values, showing only the first 8 characters.
func maskValue(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:8] + strings.Repeat("*", len(value)-8)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// WatchConfig enables configuration hot reloading. The callback
// receives the freshly loaded configuration on every change.
func WatchConfig(configPath string, callback func(*Config)) error {
	v := viper.New()

	if err := setConfigFile(v, configPath); err != nil {
		return err
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		config, err := LoadWithOptions(LoadOptions{
			ConfigPath:       configPath,
			ValidateRequired: true,
		})
		if err != nil {
			return
		}
		callback(config)
	})

	return nil
}
