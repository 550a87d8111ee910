// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiBackend implements Backend against the Gemini generateContent API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend wraps an existing Gemini client for the given model.
func NewGeminiBackend(client *genai.Client, model string) *GeminiBackend {
	return &GeminiBackend{client: client, model: model}
}

// Generate sends a single-turn user prompt and returns the response text.
func (b *GeminiBackend) Generate(ctx context.Context, prompt string, opts GenerateOpts) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate: empty candidate list")
	}

	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			text.WriteString(p.Text)
		}
	}
	return text.String(), nil
}
