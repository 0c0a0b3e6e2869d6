package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/flight-insight/flightinsight/internal/domain"
)

// Client is a text generation provider backed by the Gemini API. It serves
// both blocking one-shot generation (parameter extraction) and chunked
// streaming (answer generation).
type Client struct {
	client    *genai.Client
	model     string
	temp      float32
	maxTokens int32
	logger    *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey    string
	Model     string
	Temp      float32
	MaxTokens int32
	Logger    *zap.Logger
}

// NewClient creates a Gemini generation provider.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:    client,
		model:     cfg.Model,
		temp:      cfg.Temp,
		maxTokens: cfg.MaxTokens,
		logger:    cfg.Logger,
	}, nil
}

// Generate produces a complete response for the prompt in one call.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		c.generateConfig(),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w: %w", err, domain.ErrGenerationProviderError)
	}

	return resp.Text(), nil
}

// GenerateStream produces a response chunk by chunk, invoking emit for each
// text fragment as it arrives. A nil return means the model finished the
// response; any error means the stream did not complete. An error returned
// by emit aborts generation and is propagated as-is.
func (c *Client) GenerateStream(ctx context.Context, prompt string, emit func(text string) error) error {
	stream := c.client.Models.GenerateContentStream(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		c.generateConfig(),
	)

	for resp, err := range stream {
		if err != nil {
			return fmt.Errorf("generation stream: %w: %w", err, domain.ErrGenerationProviderError)
		}

		text := resp.Text()
		if text == "" {
			continue
		}
		if err := emit(text); err != nil {
			return err
		}
	}

	return nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temp),
	}
	if c.maxTokens > 0 {
		cfg.MaxOutputTokens = c.maxTokens
	}
	return cfg
}
