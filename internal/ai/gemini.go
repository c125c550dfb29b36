package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient generates text through the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate runs a single prompt-in/text-out completion. No streaming, no
// retries: a failed provider call is a failed request.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini returned empty response")
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini response has no text content")
	}
	return text, nil
}
