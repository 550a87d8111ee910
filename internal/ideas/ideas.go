// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ideas manages the on-disk lifecycle of business idea documents.
// An idea is a plain-text file whose state is represented purely by
// directory membership: pending/ holds unprocessed ideas, evaluated/ holds
// the archive. Files are never mutated in place, only read and renamed.
package ideas

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

// EnsureLayout creates the pending, evaluated, and feedback directories.
func EnsureLayout(cfg types.StorageConfig) error {
	for _, dir := range []string{cfg.PendingDir, cfg.EvaluatedDir, cfg.FeedbackDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: creating directory %s: %v", types.ErrFilesystem, dir, err)
		}
	}
	return nil
}

// ListPending returns the sorted names of *.md files in the pending queue.
// A missing queue directory is an empty queue, not an error.
func ListPending(pendingDir string) ([]string, error) {
	entries, err := os.ReadDir(pendingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading pending directory %s: %v", types.ErrFilesystem, pendingDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads an idea file and trims surrounding whitespace. The caller
// skips ideas whose trimmed text is empty.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading idea %s: %v", types.ErrFilesystem, path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// MoveToEvaluated renames a processed idea file out of the pending queue
// into the evaluated archive, creating the archive directory as needed.
// Only files that actually live under a pending directory are moved; any
// other path is returned unchanged.
func MoveToEvaluated(path, evaluatedDir string) (string, error) {
	if !strings.Contains(path, "pending") {
		return path, nil
	}
	if _, err := os.Stat(path); err != nil {
		return path, nil
	}

	if err := os.MkdirAll(evaluatedDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating evaluated directory: %v", types.ErrFilesystem, err)
	}

	dest := filepath.Join(evaluatedDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("%w: archiving %s: %v", types.ErrFilesystem, filepath.Base(path), err)
	}
	return dest, nil
}
