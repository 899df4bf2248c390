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

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/your-org/launchpage/internal/prompt"
)

// OpenAIClient implements Client against the OpenAI chat-completion API.
type OpenAIClient struct {
	client   *openai.Client
	settings Settings
	logger   *zap.Logger
}

// NewOpenAIClient creates the collaborator client. The call itself is
// never retried here: content-quality retries belong to the pipeline
// and transport failures propagate to the caller.
func NewOpenAIClient(settings Settings, logger *zap.Logger) (*OpenAIClient, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if settings.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	config := openai.DefaultConfig(settings.APIKey)
	if settings.Endpoint != "" {
		config.BaseURL = settings.Endpoint
	}

	logger.Info("OpenAI client initialized",
		zap.String("model", settings.Model),
		zap.Int("max_tokens", settings.MaxTokens),
	)

	return &OpenAIClient{
		client:   openai.NewClientWithConfig(config),
		settings: settings,
		logger:   logger,
	}, nil
}

// Complete sends one chat completion and returns the extracted text
// content. Transport failures are returned to the caller unretried.
func (c *OpenAIClient) Complete(ctx context.Context, p prompt.Prompt) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.System},
			{Role: openai.ChatMessageRoleUser, Content: p.User},
		},
		MaxTokens:   c.settings.MaxTokens,
		Temperature: c.settings.Temperature,
	}

	c.logger.Debug("Sending chat completion request",
		zap.String("model", c.settings.Model),
		zap.Int("user_prompt_length", len(p.User)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	content, err := extractContent(resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Chat completion succeeded",
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int("content_length", len(content)),
	)

	return content, nil
}

// extractContent pulls text out of the response envelope without
// trusting its shape: the primary content field first, then any
// text-bearing part of a multi-content message, then later choices.
func extractContent(resp openai.ChatCompletionResponse) (string, error) {
	for _, choice := range resp.Choices {
		if content := strings.TrimSpace(choice.Message.Content); content != "" {
			return choice.Message.Content, nil
		}
		for _, part := range choice.Message.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText && strings.TrimSpace(part.Text) != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("model returned no text content")
}
