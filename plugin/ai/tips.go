// Package ai generates travel tips through an OpenAI-compatible chat API.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// Config holds the tips provider configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.openai.com/v1",
		Model:   "gpt-4o-mini",
		Timeout: 30 * time.Second,
	}
}

// TipsService produces short travel tips for a destination.
type TipsService struct {
	client *openai.Client
	config *Config
}

// NewTipsService creates a tips service. The API key is required.
func NewTipsService(cfg *Config) (*TipsService, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &TipsService{
		client: openai.NewClientWithConfig(clientConfig),
		config: cfg,
	}, nil
}

const tipsSystemPrompt = `You are a concise travel guide. Given a destination and an optional list of planned stops, reply with 3-5 practical tips in markdown bullet points. Cover local transport, etiquette, and food. No preamble.`

// TravelTips returns markdown tips for a destination. stops may be empty.
func (s *TipsService) TravelTips(ctx context.Context, destination string, stops []string) (string, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return "", errors.New("destination is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	prompt := fmt.Sprintf("Destination: %s", destination)
	if len(stops) > 0 {
		prompt += fmt.Sprintf("\nPlanned stops: %s", strings.Join(stops, ", "))
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tipsSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   512,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("provider returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
