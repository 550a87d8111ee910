// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	backoffBase = time.Millisecond
}

// mockBackend returns canned responses or fails the first failUntil calls.
type mockBackend struct {
	response  string
	err       error
	failUntil int
	calls     int
	lastOpts  GenerateOpts
	lastText  string
}

func (m *mockBackend) Generate(_ context.Context, prompt string, opts GenerateOpts) (string, error) {
	m.calls++
	m.lastOpts = opts
	m.lastText = prompt
	if m.err != nil && m.calls <= m.failUntil {
		return "", m.err
	}
	if m.err != nil && m.failUntil == 0 {
		return "", m.err
	}
	return m.response, nil
}

func TestCritique(t *testing.T) {
	backend := &mockBackend{response: "A thorough analysis."}

	got, err := Critique(context.Background(), backend, "sell socks online", "You are a reviewer.", 3)
	require.NoError(t, err)

	assert.Equal(t, "A thorough analysis.", got)
	assert.Contains(t, backend.lastText, "You are a reviewer.")
	assert.Contains(t, backend.lastText, "sell socks online")
	assert.Equal(t, float32(0.7), backend.lastOpts.Temperature)
	assert.Equal(t, int32(2048), backend.lastOpts.MaxOutputTokens)
}

func TestCritiqueEmptyResponse(t *testing.T) {
	backend := &mockBackend{response: "   "}

	_, err := Critique(context.Background(), backend, "idea", "prompt", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProvider)
}

func TestCritiqueRetriesTransientFailures(t *testing.T) {
	backend := &mockBackend{
		response:  "eventual analysis",
		err:       errors.New("503 overloaded"),
		failUntil: 2,
	}

	got, err := Critique(context.Background(), backend, "idea", "prompt", 3)
	require.NoError(t, err)
	assert.Equal(t, "eventual analysis", got)
	assert.Equal(t, 3, backend.calls)
}

func TestCritiqueExhaustsRetries(t *testing.T) {
	backend := &mockBackend{err: errors.New("boom")}

	_, err := Critique(context.Background(), backend, "idea", "prompt", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProvider)
	// 1 initial + 2 retries.
	assert.Equal(t, 3, backend.calls)
}

func TestSuggestSlug(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
		want     string
	}{
		{"clean suggestion", "ai-fitness-coach", nil, "ai-fitness-coach"},
		{"uppercase and spaces", "Smart Plant Monitor", nil, "smart-plant-monitor"},
		{"underscores", "crypto_learning_app", nil, "crypto-learning-app"},
		{"quoted with punctuation", `"pet-sitter-app!"`, nil, "pet-sitter-app"},
		{"surrounding whitespace", "  drone-delivery \n", nil, "drone-delivery"},
		{"backend failure falls back", "", errors.New("quota"), "business-idea"},
		{"unusable response falls back", "!!! ???", nil, "business-idea"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &mockBackend{response: tt.response, err: tt.err}
			got := SuggestSlug(context.Background(), backend, "some idea", 1)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestSlugOpts(t *testing.T) {
	backend := &mockBackend{response: "a-slug"}
	SuggestSlug(context.Background(), backend, "some idea", 1)

	assert.Equal(t, float32(0.3), backend.lastOpts.Temperature)
	assert.Equal(t, int32(50), backend.lastOpts.MaxOutputTokens)
	assert.Contains(t, backend.lastText, "some idea")
}

func TestLoadSystemPrompt(t *testing.T) {
	t.Run("reads configured file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "system-prompt.md")
		require.NoError(t, os.WriteFile(path, []byte("  Custom persona.  \n"), 0o644))

		assert.Equal(t, "Custom persona.", LoadSystemPrompt(path))
	})

	t.Run("missing file falls back", func(t *testing.T) {
		got := LoadSystemPrompt(filepath.Join(t.TempDir(), "absent.md"))
		assert.Contains(t, got, "Herman Poppleberry")
	})

	t.Run("empty path falls back", func(t *testing.T) {
		assert.Contains(t, LoadSystemPrompt(""), "Herman Poppleberry")
	})

	t.Run("blank file falls back", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "blank.md")
		require.NoError(t, os.WriteFile(path, []byte("   \n"), 0o644))
		assert.Contains(t, LoadSystemPrompt(path), "Herman Poppleberry")
	})
}
