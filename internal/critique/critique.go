// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package critique produces the written analysis of a business idea and a
// filename slug for its artifacts, both via the Gemini text endpoint.
package critique

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

// GenerateOpts tunes a single text-generation call.
type GenerateOpts struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Backend abstracts the text-generation API so tests can supply a mock.
type Backend interface {
	Generate(ctx context.Context, prompt string, opts GenerateOpts) (string, error)
}

const slugFallback = "business-idea"

// slugPromptTemplate asks for a short kebab-case name. The model replies
// with only the suggestion; sanitizeSlug cleans up anything extra.
const slugPromptTemplate = `Based on this business idea, suggest a short, descriptive filename (2-4 words, kebab-case) that captures the essence of the idea:

%s

Respond with ONLY the filename suggestion, no explanation. Examples: "ai-fitness-coach", "smart-plant-monitor", "crypto-learning-app".`

// Critique sends the idea with the reviewer persona prompt and returns the
// analysis prose. An empty model response is a provider error.
func Critique(ctx context.Context, backend Backend, idea, systemPrompt string, maxRetries int) (string, error) {
	prompt := fmt.Sprintf("%s\n\nHere is the business idea for you to analyze:\n\n%s", systemPrompt, idea)

	text, err := callWithRetry(ctx, backend, prompt, GenerateOpts{
		Temperature:     0.7,
		MaxOutputTokens: 2048,
	}, maxRetries)
	if err != nil {
		return "", fmt.Errorf("%w: analyzing idea: %v", types.ErrProvider, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text response received", types.ErrProvider)
	}
	return text, nil
}

// SuggestSlug asks the model for a filename stem. Any failure or unusable
// response falls back to a generic slug rather than failing the idea.
func SuggestSlug(ctx context.Context, backend Backend, idea string, maxRetries int) string {
	prompt := fmt.Sprintf(slugPromptTemplate, idea)

	text, err := callWithRetry(ctx, backend, prompt, GenerateOpts{
		Temperature:     0.3,
		MaxOutputTokens: 50,
	}, maxRetries)
	if err != nil {
		return slugFallback
	}

	slug := sanitizeSlug(text)
	if slug == "" {
		return slugFallback
	}
	return slug
}

// sanitizeSlug lowercases the suggestion, converts spaces and underscores
// to hyphens, and strips everything outside [a-z0-9-].
func sanitizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var b strings.Builder
	for _, r := range s {
		if r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// backoffBase controls the base duration for exponential backoff. Tests
// override this to avoid real sleeps.
var backoffBase = time.Second

// callWithRetry calls the backend with exponential backoff.
func callWithRetry(ctx context.Context, backend Backend, prompt string, opts GenerateOpts, maxRetries int) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 3
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * backoffBase
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := backend.Generate(ctx, prompt, opts)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
