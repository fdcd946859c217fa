package aigen

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// TextGenerator produces raw model output for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed generator. The API key is read
// from the environment by the client (GEMINI_API_KEY).
func NewGeminiProvider(ctx context.Context, model string) (TextGenerator, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &geminiProvider{client: client, model: model}, nil
}

// Generate sends the prompt with fixed sampling parameters. Low temperature
// keeps the output close to the requested JSON shape.
func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.4),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 8192,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	raw := result.Text()
	if raw == "" {
		return "", errors.New("empty model response")
	}
	return raw, nil
}
