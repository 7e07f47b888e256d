package services

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient wraps the Gemini SDK with the generation settings used for
// translation grading: a moderate temperature and a bounded output budget
// tuned for consistent JSON.
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
}

// NewGeminiClient initializes the Gemini client. An empty apiKey returns an
// error so callers can distinguish a missing deployment credential from a
// failed call.
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int, temperature float32) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key not configured")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}, nil
}

// GenerateText sends a prompt and returns the cleaned response text.
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini client not initialized")
	}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: g.maxTokens,
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
