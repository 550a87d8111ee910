// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Report aggregates everything produced for one business idea during a
// pipeline pass. It is built incrementally as the steps complete; the
// derived files persist, the Report itself is only serialized as a YAML
// sidecar in the run folder and summarized in the history ledger.
type Report struct {
	// Timestamp is when processing of this idea started.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Slug is the kebab-case filename stem suggested for this idea.
	Slug string `json:"slug" yaml:"slug"`

	// Idea is the original business idea text.
	Idea string `json:"idea" yaml:"idea"`

	// VoiceStyle is the tone used for the audio rendition.
	VoiceStyle VoiceStyle `json:"voice_style" yaml:"voice_style"`

	// Critique is the full analysis text returned by the model.
	Critique string `json:"critique" yaml:"critique"`

	// OutputDir is the per-run folder holding all artifacts.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// AudioPath, MarkdownPath, PDFPath, and TextPath locate the artifacts.
	AudioPath    string `json:"audio_path" yaml:"audio_path"`
	MarkdownPath string `json:"markdown_path" yaml:"markdown_path"`
	PDFPath      string `json:"pdf_path" yaml:"pdf_path"`
	TextPath     string `json:"text_path" yaml:"text_path"`

	// EmailSent reports whether the notification email was delivered.
	EmailSent bool `json:"email_sent" yaml:"email_sent"`
}
