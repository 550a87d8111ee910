// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInsertAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := &types.Report{
		Timestamp:  time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC),
		Slug:       "ai-fitness-coach",
		VoiceStyle: types.StyleUpbeat,
		OutputDir:  "agent/feedback/20260105_120000_ai-fitness-coach",
		EmailSent:  true,
	}
	second := &types.Report{
		Timestamp:  time.Date(2026, time.January, 6, 9, 30, 0, 0, time.UTC),
		Slug:       "pet-rock-rental",
		VoiceStyle: types.StyleSerious,
		OutputDir:  "agent/feedback/20260106_093000_pet-rock-rental",
		EmailSent:  false,
	}
	require.NoError(t, store.Insert(ctx, first))
	require.NoError(t, store.Insert(ctx, second))

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "pet-rock-rental", entries[0].Slug)
	assert.Equal(t, "serious", entries[0].VoiceStyle)
	assert.False(t, entries[0].EmailSent)

	assert.Equal(t, "ai-fitness-coach", entries[1].Slug)
	assert.True(t, entries[1].EmailSent)
	assert.Equal(t, first.Timestamp, entries[1].Timestamp)
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Insert(ctx, &types.Report{
			Timestamp:  time.Now(),
			Slug:       "idea",
			VoiceStyle: types.StyleUpbeat,
			OutputDir:  "out",
		}))
	}

	entries, err := store.List(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Non-positive limit falls back to the default.
	entries, err = store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), &types.Report{
		Timestamp: time.Now(), Slug: "x", VoiceStyle: types.StyleUpbeat, OutputDir: "o",
	}))
	require.NoError(t, store.Close())

	// Reopening the same database keeps existing rows.
	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
