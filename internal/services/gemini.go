package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGenAIModel is used when no model is configured
const DefaultGenAIModel = "gemini-2.5-flash"

// GeminiGenerator calls the Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator returns a nil Generator when apiKey is empty so the
// result can go straight to NewAssistant
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return nil, nil
	}
	if model == "" {
		model = DefaultGenAIModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements Generator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}
