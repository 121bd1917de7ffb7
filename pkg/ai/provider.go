package ai

import "context"

// Provider defines the interface for the external report generators.
// Implementations produce a single markdown audit report per call; the
// scoring core treats the output as untrusted text.
type Provider interface {
	GenerateReport(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}
