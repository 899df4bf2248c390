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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/your-org/launchpage/internal/asset"
	"github.com/your-org/launchpage/internal/brief"
	"github.com/your-org/launchpage/internal/config"
	"github.com/your-org/launchpage/internal/fallback"
	"github.com/your-org/launchpage/internal/generator"
	"github.com/your-org/launchpage/internal/llm"
	"github.com/your-org/launchpage/internal/logging"
)

type generateFlags struct {
	name            string
	ticker          string
	description     string
	primaryColor    string
	accentColor     string
	backgroundColor string
	twitterURL      string
	telegramURL     string
	logoPath        string
	backgroundPath  string
	outputPath      string
}

func newGenerateCmd() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single landing page from the command line",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGenerate(flags)
		},
	}

	cmd.Flags().StringVarP(&flags.name, "name", "n", "", "Project name")
	cmd.Flags().StringVarP(&flags.ticker, "ticker", "t", "", "Token ticker symbol")
	cmd.Flags().StringVarP(&flags.description, "description", "d", "", "Project description")
	cmd.Flags().StringVar(&flags.primaryColor, "primary-color", "", "Primary color as a hex value")
	cmd.Flags().StringVar(&flags.accentColor, "accent-color", "", "Accent color as a hex value")
	cmd.Flags().StringVar(&flags.backgroundColor, "background-color", "", "Background color as a hex value")
	cmd.Flags().StringVar(&flags.twitterURL, "twitter", "", "Twitter profile URL")
	cmd.Flags().StringVar(&flags.telegramURL, "telegram", "", "Telegram group URL")
	cmd.Flags().StringVar(&flags.logoPath, "logo", "", "Path to a logo image file")
	cmd.Flags().StringVar(&flags.backgroundPath, "background", "", "Path to a background image file")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "index.html", "Output HTML file path")

	return cmd
}

func runGenerate(flags *generateFlags) error {
	// Validation is deferred so the command still works without an
	// API key: in that case the deterministic template is rendered.
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath:       configPath,
		ValidateRequired: false,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	raw, err := briefFromFlags(flags)
	if err != nil {
		return err
	}

	b, err := brief.Normalize(raw)
	if err != nil {
		return fmt.Errorf("invalid brief: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		logger.Info("No API key configured, rendering the deterministic template",
			zap.String("name", b.Name))

		doc, err := fallback.Render(b)
		if err != nil {
			return fmt.Errorf("template render failed: %w", err)
		}
		doc = asset.Inject(doc, b.LogoAsset, b.BackgroundAsset)

		return writePage(flags.outputPath, doc, logger, true, 0)
	}

	client, err := llm.NewOpenAIClient(llm.Settings{
		APIKey:      cfg.OpenAI.APIKey,
		Endpoint:    cfg.OpenAI.Endpoint,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: float32(cfg.Generation.Temperature),
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize model client: %w", err)
	}

	pipeline, err := generator.NewPipeline(client, generator.Config{
		MaxAttempts: cfg.Generation.MaxAttempts,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize generation pipeline: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Generation.TimeoutSeconds)*time.Second)
	defer cancel()

	logger.Info("Generating landing page",
		zap.String("name", b.Name),
		zap.String("ticker", b.Ticker))

	result, err := pipeline.Generate(ctx, b)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	return writePage(flags.outputPath, result.Document, logger, result.Fallback, len(result.Attempts))
}

func writePage(path, doc string, logger *zap.Logger, usedFallback bool, attempts int) error {
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	logger.Info("Landing page written",
		zap.String("output", path),
		zap.Bool("fallback", usedFallback),
		zap.Int("attempts", attempts))

	return nil
}

// briefFromFlags builds a raw brief from command line flags, encoding
// any referenced image files as data URIs.
func briefFromFlags(flags *generateFlags) (brief.Raw, error) {
	raw := brief.Raw{
		Name:            flags.name,
		Ticker:          flags.ticker,
		Description:     flags.description,
		PrimaryColor:    flags.primaryColor,
		AccentColor:     flags.accentColor,
		BackgroundColor: flags.backgroundColor,
		TwitterURL:      flags.twitterURL,
		TelegramURL:     flags.telegramURL,
	}

	logo, err := encodeAssetFile(flags.logoPath)
	if err != nil {
		return raw, fmt.Errorf("failed to read logo: %w", err)
	}
	raw.LogoAsset = logo

	background, err := encodeAssetFile(flags.backgroundPath)
	if err != nil {
		return raw, fmt.Errorf("failed to read background: %w", err)
	}
	raw.BackgroundAsset = background

	return raw, nil
}

func encodeAssetFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return asset.EncodeDataURI(data)
}
