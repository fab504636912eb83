package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

var _ Generator = (*GenAI)(nil)

// GenAI generates text with the Gemini API.
type GenAI struct {
	client *genai.Client
}

func NewGenAI(ctx context.Context, apiKey string) (*GenAI, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: create genai client: %w", err)
	}
	return &GenAI{client: client}, nil
}

func (g *GenAI) Generate(ctx context.Context, model, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("assistant: generate with %s: %w", model, err)
	}
	return resp.Text(), nil
}
