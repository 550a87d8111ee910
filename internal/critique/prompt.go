// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package critique

import (
	"os"
	"strings"
)

// defaultSystemPrompt is used when no prompt file is configured or the
// configured file is missing.
const defaultSystemPrompt = `Your purpose is to act as a friendly and helpful business refinement agent.
Your task is to assist the user by providing analysis, evaluation and feedback upon a business idea.
Write in a conversational style as Herman Poppleberry, addressing Daniel directly.`

// LoadSystemPrompt reads the reviewer persona prompt from path, falling
// back to the built-in prompt when the file cannot be read or is empty.
func LoadSystemPrompt(path string) string {
	if path == "" {
		return defaultSystemPrompt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultSystemPrompt
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return defaultSystemPrompt
	}
	return prompt
}
