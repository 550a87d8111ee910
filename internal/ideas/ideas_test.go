// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

func TestListPending(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  []string
	}{
		{
			name: "returns sorted markdown files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "zebra-startup.md", "idea")
				writeFile(t, dir, "ai-coach.md", "idea")
				writeFile(t, dir, "notes.txt", "not an idea")
				return dir
			},
			want: []string{"ai-coach.md", "zebra-startup.md"},
		},
		{
			name: "missing directory is an empty queue",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope")
			},
			want: nil,
		},
		{
			name: "skips subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				require.NoError(t, os.Mkdir(filepath.Join(dir, "drafts.md"), 0o755))
				writeFile(t, dir, "real.md", "idea")
				return dir
			},
			want: []string{"real.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ListPending(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "idea.md", "  a plant monitor that texts you  \n\n")

	got, err := Load(filepath.Join(dir, "idea.md"))
	require.NoError(t, err)
	assert.Equal(t, "a plant monitor that texts you", got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "gone.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrFilesystem)
}

func TestMoveToEvaluated(t *testing.T) {
	base := t.TempDir()
	pending := filepath.Join(base, "pending")
	evaluated := filepath.Join(base, "evaluated")
	require.NoError(t, os.MkdirAll(pending, 0o755))
	writeFile(t, pending, "idea.md", "text")

	src := filepath.Join(pending, "idea.md")
	dest, err := MoveToEvaluated(src, evaluated)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(evaluated, "idea.md"), dest)
	assert.NoFileExists(t, src)
	assert.FileExists(t, dest)
}

func TestMoveToEvaluatedNonPendingPath(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "elsewhere.md", "text")
	src := filepath.Join(base, "elsewhere.md")

	dest, err := MoveToEvaluated(src, filepath.Join(base, "evaluated"))
	require.NoError(t, err)

	// Files outside a pending directory stay where they are.
	assert.Equal(t, src, dest)
	assert.FileExists(t, src)
}

func TestEnsureLayout(t *testing.T) {
	base := t.TempDir()
	cfg := types.StorageConfig{
		PendingDir:   filepath.Join(base, "agent", "user-ideas", "pending"),
		EvaluatedDir: filepath.Join(base, "agent", "user-ideas", "evaluated"),
		FeedbackDir:  filepath.Join(base, "agent", "feedback"),
	}
	require.NoError(t, EnsureLayout(cfg))

	assert.DirExists(t, cfg.PendingDir)
	assert.DirExists(t, cfg.EvaluatedDir)
	assert.DirExists(t, cfg.FeedbackDir)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
