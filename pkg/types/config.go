// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// VoiceStyle selects the delivery tone for synthesized audio feedback.
type VoiceStyle string

const (
	StyleSerious  VoiceStyle = "serious"
	StyleFlippant VoiceStyle = "flippant"
	StyleUpbeat   VoiceStyle = "upbeat"
)

// ParseVoiceStyle validates a voice style name. The empty string maps to
// the default (upbeat); anything else unrecognized is an error.
func ParseVoiceStyle(s string) (VoiceStyle, error) {
	switch VoiceStyle(s) {
	case StyleSerious, StyleFlippant, StyleUpbeat:
		return VoiceStyle(s), nil
	case "":
		return StyleUpbeat, nil
	default:
		return "", fmt.Errorf("%w: unknown voice style %q (want serious, flippant, or upbeat)", ErrConfig, s)
	}
}

// AIConfig holds shared settings for components that call the Gemini API.
type AIConfig struct {
	// Model is the Gemini model identifier (e.g. "gemini-2.0-flash-exp").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the Gemini API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry attempts for failed API calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CritiqueConfig holds settings for the critique and filename-suggestion calls.
type CritiqueConfig struct {
	AIConfig `yaml:",inline"`

	// SystemPromptPath is the file holding the reviewer persona prompt.
	// When the file is absent a built-in prompt is used.
	SystemPromptPath string `json:"system_prompt_path" yaml:"system_prompt_path"`
}

// SpeechConfig holds settings for the text-to-speech call.
type SpeechConfig struct {
	// Model is the Gemini TTS model identifier.
	Model string `json:"model" yaml:"model"`

	// Voice is the prebuilt voice name (e.g. "Charon").
	Voice string `json:"voice" yaml:"voice"`

	// Style selects the tone instruction prepended to the critique text.
	Style VoiceStyle `json:"style" yaml:"style"`
}

// MailConfig holds settings for email delivery through Resend.
type MailConfig struct {
	// APIKey is the Resend API key. When empty, delivery is disabled.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// From is the sender, display-name form ("Name <addr>").
	From string `json:"from" yaml:"from"`

	// To is the single recipient address.
	To string `json:"to" yaml:"to"`

	// Subject is the email subject line.
	Subject string `json:"subject" yaml:"subject"`

	// Enabled gates delivery; the run command clears it for --no-email.
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// StorageConfig holds the local filesystem layout for the pipeline.
type StorageConfig struct {
	// PendingDir is the input queue of unprocessed idea files.
	PendingDir string `json:"pending_dir" yaml:"pending_dir"`

	// EvaluatedDir is where processed idea files are archived.
	EvaluatedDir string `json:"evaluated_dir" yaml:"evaluated_dir"`

	// FeedbackDir is the base directory for per-run output folders.
	FeedbackDir string `json:"feedback_dir" yaml:"feedback_dir"`

	// HistoryDir is the directory holding the run-history database.
	HistoryDir string `json:"history_dir" yaml:"history_dir"`
}

// PipelineConfig groups all component configurations for a run. It is built
// once at startup; no component reads the environment afterwards.
type PipelineConfig struct {
	Critique CritiqueConfig `json:"critique" yaml:"critique"`
	Speech   SpeechConfig   `json:"speech" yaml:"speech"`
	Mail     MailConfig     `json:"mail" yaml:"mail"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
}
