// Package llm wraps the Gemini API behind a single-shot text generation
// call. The generation service is treated as the unreliable, expensive
// resource in the pipeline: callers decide how to handle its failures, and
// this client never retries.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-flash-lite-latest"

// ErrMissingAPIKey indicates no Gemini credential could be found. No amount
// of retrying fixes a missing credential, so callers should fail fast.
var ErrMissingAPIKey = errors.New("gemini API key is required: set GEMINI_API_KEY or gemini.api_key in the config file")

// Client generates free text from a prompt via Gemini.
type Client struct {
	modelName string
	gClient   *genai.Client
}

// NewClient creates an LLM client. The API key is resolved from the
// GEMINI_API_KEY environment variable, then the gemini.api_key config key.
func NewClient(ctx context.Context, modelName string) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = viper.GetString("gemini.api_key")
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if modelName == "" {
		modelName = viper.GetString("gemini.model")
		if modelName == "" {
			modelName = DefaultModel
		}
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName: modelName,
		gClient:   gClient,
	}, nil
}

// Generate produces free-text content from a single prompt. One call, no
// streaming, no structured output.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", c.modelName)
	}
	return text, nil
}
