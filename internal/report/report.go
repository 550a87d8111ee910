// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a critique into its document artifacts: Markdown,
// a paginated PDF, and the plain analysis text.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/idea-refinery/pkg/types"
)

const (
	analystName     = "Herman Poppleberry"
	generatorFooter = "Generated by Business Idea Refinement Agent"
	dateLayout      = "January 2, 2006 at 3:04 PM"
)

// WriteMarkdown renders the critique as a Markdown document at path.
func WriteMarkdown(path, idea, critique string, at time.Time) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Business Idea Analysis\n")
	fmt.Fprintf(&b, "**Date**: %s  \n", at.Format(dateLayout))
	fmt.Fprintf(&b, "**Analyst**: %s\n\n", analystName)
	fmt.Fprintf(&b, "## Original Business Idea\n\n%s\n\n", idea)
	fmt.Fprintf(&b, "## Analysis & Feedback\n\n%s\n\n", critique)
	fmt.Fprintf(&b, "---\n*%s*\n", generatorFooter)

	return writeFile(path, []byte(b.String()))
}

// WriteText writes the raw analysis text at path.
func WriteText(path, critique string) error {
	return writeFile(path, []byte(critique))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", types.ErrFilesystem, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrFilesystem, filepath.Base(path), err)
	}
	return nil
}
