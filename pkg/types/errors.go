// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Failure kinds for the pipeline. Errors are wrapped with one of these
// sentinels so callers can decide retry vs. abort with errors.Is instead
// of matching message strings.
var (
	// ErrConfig marks missing or invalid startup configuration. Fatal
	// before any idea is processed.
	ErrConfig = errors.New("configuration error")

	// ErrProvider marks a failed or malformed third-party API exchange
	// (Gemini text, Gemini TTS, Resend).
	ErrProvider = errors.New("provider request error")

	// ErrFilesystem marks a local read, write, or rename failure.
	ErrFilesystem = errors.New("filesystem error")
)
