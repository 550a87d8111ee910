// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates one full pass per business idea: critique,
// audio synthesis, document artifacts, email notification, and archival.
// Ideas are processed strictly one at a time; a failure aborts only the
// idea that raised it, without rolling back partially written files.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/idea-refinery/internal/critique"
	"github.com/pdiddy/idea-refinery/internal/history"
	"github.com/pdiddy/idea-refinery/internal/ideas"
	"github.com/pdiddy/idea-refinery/internal/notify"
	"github.com/pdiddy/idea-refinery/internal/report"
	"github.com/pdiddy/idea-refinery/internal/speech"
	"github.com/pdiddy/idea-refinery/pkg/types"
)

const folderTimestamp = "20060102_150405"

// BatchResult holds the outcome of one batch run over the pending queue.
type BatchResult struct {
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of pending files examined.
func (r BatchResult) Total() int {
	return r.Processed + r.Skipped + r.Failed
}

// HasFailures reports whether any ideas failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Runner wires the pipeline's collaborators together. The zero Now field
// means time.Now; tests inject a fixed clock for stable folder names.
type Runner struct {
	Backend critique.Backend
	Synth   speech.Synthesizer
	Mailer  *notify.Mailer
	History *history.Store
	Config  types.PipelineConfig
	Now     func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run processes every pending idea in order, printing per-item status to w
// and returning a summary. It continues after individual failures; empty
// idea files are skipped without counting as processed or failed.
func (r *Runner) Run(ctx context.Context, w io.Writer) (BatchResult, error) {
	var result BatchResult

	if err := ideas.EnsureLayout(r.Config.Storage); err != nil {
		return result, err
	}

	pending, err := ideas.ListPending(r.Config.Storage.PendingDir)
	if err != nil {
		return result, err
	}
	if len(pending) == 0 {
		fmt.Fprintf(w, "No pending business ideas found in %s\n", r.Config.Storage.PendingDir)
		fmt.Fprintln(w, "Add .md files there to process them.")
		return result, nil
	}

	fmt.Fprintf(w, "Found %d pending business idea(s) to process\n", len(pending))

	systemPrompt := critique.LoadSystemPrompt(r.Config.Critique.SystemPromptPath)

	for _, name := range pending {
		path := filepath.Join(r.Config.Storage.PendingDir, name)

		idea, err := ideas.Load(path)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		if idea == "" {
			fmt.Fprintf(w, "skipped: %s (empty file)\n", name)
			result.Skipped++
			continue
		}

		fmt.Fprintf(w, "processing: %s\n", name)

		rep, err := r.ProcessIdea(ctx, path, idea, systemPrompt, w)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "completed: %s -> %s\n", name, rep.OutputDir)
		result.Processed++
	}

	fmt.Fprintf(w, "\nBatch summary: %d processed, %d skipped, %d failed (total: %d)\n",
		result.Processed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// ProcessIdea runs the seven pipeline steps for one idea and returns the
// Report. The idea file is archived to evaluated/ only after every other
// step has completed.
func (r *Runner) ProcessIdea(ctx context.Context, path, idea, systemPrompt string, w io.Writer) (*types.Report, error) {
	started := r.now()

	rep := &types.Report{
		Timestamp:  started,
		Idea:       idea,
		VoiceStyle: r.Config.Speech.Style,
	}

	// Step 1: critique.
	critiqueText, err := critique.Critique(ctx, r.Backend, idea, systemPrompt, r.Config.Critique.MaxRetries)
	if err != nil {
		return nil, err
	}
	rep.Critique = critiqueText

	// Step 2: filename suggestion and output folder. The timestamp prefix
	// keeps folders unique across runs and across ideas in one run.
	rep.Slug = critique.SuggestSlug(ctx, r.Backend, idea, r.Config.Critique.MaxRetries)
	folderName := fmt.Sprintf("%s_%s", started.Format(folderTimestamp), rep.Slug)
	rep.OutputDir = filepath.Join(r.Config.Storage.FeedbackDir, folderName)
	if err := os.MkdirAll(rep.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating output folder: %v", types.ErrFilesystem, err)
	}

	// Step 3: audio synthesis and container decision.
	clip, err := r.Synth.Synthesize(ctx, critiqueText, r.Config.Speech.Style)
	if err != nil {
		return nil, err
	}
	audioData := clip.Data
	ext, ok := speech.FileExtension(clip.MIMEType)
	if !ok {
		// No extension mapping means raw PCM: wrap it in a WAV container.
		audioData = speech.EncodeWAV(clip.Data, speech.ParseFormat(clip.MIMEType))
		ext = ".wav"
	}
	rep.AudioPath = filepath.Join(rep.OutputDir, rep.Slug+"_audio"+ext)
	if err := os.WriteFile(rep.AudioPath, audioData, 0o644); err != nil {
		return nil, fmt.Errorf("%w: writing audio: %v", types.ErrFilesystem, err)
	}

	// Step 4: document artifacts.
	base := filepath.Join(rep.OutputDir, rep.Slug+"_analysis")
	rep.MarkdownPath = base + ".md"
	rep.PDFPath = base + ".pdf"
	rep.TextPath = base + ".txt"

	if err := report.WriteMarkdown(rep.MarkdownPath, idea, critiqueText, started); err != nil {
		return nil, err
	}
	if err := report.WritePDF(rep.PDFPath, idea, critiqueText, started); err != nil {
		return nil, err
	}
	if err := report.WriteText(rep.TextPath, critiqueText); err != nil {
		return nil, err
	}

	// Step 5: email delivery. A delivery failure is logged, not fatal to
	// the idea; the report simply records that no email went out.
	if r.Mailer != nil && r.Mailer.Enabled() {
		if err := r.Mailer.Send(ctx, rep); err != nil {
			fmt.Fprintf(w, "  warning: email delivery failed: %v\n", err)
		} else {
			rep.EmailSent = true
		}
	} else {
		fmt.Fprintln(w, "  warning: email delivery disabled, skipping notification")
	}

	// Step 6: result sidecar and history ledger.
	if err := writeSidecar(rep); err != nil {
		return nil, err
	}
	if r.History != nil {
		if err := r.History.Insert(ctx, rep); err != nil {
			fmt.Fprintf(w, "  warning: recording run history failed: %v\n", err)
		}
	}

	// Step 7: archive the source file.
	if _, err := ideas.MoveToEvaluated(path, r.Config.Storage.EvaluatedDir); err != nil {
		return nil, err
	}

	return rep, nil
}

// writeSidecar records the report metadata next to the artifacts.
func writeSidecar(rep *types.Report) error {
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling result sidecar: %w", err)
	}
	path := filepath.Join(rep.OutputDir, rep.Slug+"_result.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing result sidecar: %v", types.ErrFilesystem, err)
	}
	return nil
}
