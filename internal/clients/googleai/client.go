package googleai

import (
	"context"
	"errors"
	"fmt"

	"ads-manager-server/internal/observability"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-1.5-flash"

var ErrEmptyResponse = errors.New("model returned no content")

// Client wraps the Gemini text generation API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *observability.Logger
}

// NewClient creates a Gemini client with the default text model.
func NewClient(ctx context.Context, apiKey string, logger *observability.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}
	return &Client{
		client: client,
		model:  client.GenerativeModel(defaultModel),
		logger: logger,
	}, nil
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// GenerateText runs a single-turn text prompt and returns the concatenated
// text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error(ctx, "Google AI generation failed", err)
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var out string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", ErrEmptyResponse
	}
	return out, nil
}
