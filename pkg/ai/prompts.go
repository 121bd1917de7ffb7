package ai

import (
	_ "embed"
)

//go:embed prompts/system_prompt.md
var systemPrompt string

// GetSystemPrompt returns the report-format contract sent to every provider
func GetSystemPrompt() string {
	return systemPrompt
}
