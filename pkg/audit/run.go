package audit

import "context"

// Generator is the external text generator boundary. The core never
// cares which model sits behind it; any timeout or retry policy
// belongs to the implementation.
type Generator interface {
	GenerateReport(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Runner orchestrates one audit: prompt formatting, generation,
// normalization, parsing, scoring, and analytics assembly. Everything
// downstream of the generator call is pure and synchronous.
type Runner struct {
	generator    Generator
	systemPrompt string

	// Deterministic switches the analytics to the baseline-scored mode:
	// the generated markdown is kept as narrative only and the score
	// comes from the questionnaire-derived findings.
	Deterministic bool
}

// RunResult carries everything a caller may want to persist or render.
type RunResult struct {
	Prompt    string
	Markdown  string
	Warnings  []string
	Findings  []Finding
	Totals    RiskTotals
	Analytics Analytics
}

// NewRunner returns a runner wired to the given generator.
func NewRunner(generator Generator, systemPrompt string) *Runner {
	return &Runner{generator: generator, systemPrompt: systemPrompt}
}

// Run executes the full pipeline for one questionnaire. The generator
// output is treated as untrusted and always passes through Normalize
// before parsing.
func (r *Runner) Run(ctx context.Context, order []string, responses map[string][]string, others map[string]string, userType string) (*RunResult, error) {
	prompt := BuildPrompt(order, responses, others, userType)

	raw, err := r.generator.GenerateReport(ctx, r.systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	markdown, warnings := Normalize(raw)

	result := &RunResult{
		Prompt:   prompt,
		Markdown: markdown,
		Warnings: warnings,
	}
	if r.Deterministic {
		result.Findings = BuildBaselineFindings(responses, userType)
		result.Analytics = BuildDeterministicAnalytics(result.Findings, markdown)
	} else {
		result.Findings = ParseFindings(markdown)
		result.Analytics = BuildAnalyticsFromMarkdown(markdown)
	}
	result.Totals = ComputeTotals(result.Findings)
	return result, nil
}
