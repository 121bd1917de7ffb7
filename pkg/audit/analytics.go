package audit

import (
	"fmt"
	"strings"
)

// Recommendation is one actionable row derived from a finding.
type Recommendation struct {
	Title     string `json:"title"`
	Severity  string `json:"severity"`
	Status    string `json:"status"`
	Rationale string `json:"rationale"`
}

// Analytics is the persisted per-audit summary object handed to the
// caller. The core treats it as write-once output; storage and
// rendering belong to the surrounding application.
type Analytics struct {
	Score            int                                    `json:"score"`
	OverallPct       int                                    `json:"overall_pct"`
	SeverityCounts   map[Severity]int                       `json:"severity_counts"`
	MitigationMatrix map[Severity]map[Mitigation]int        `json:"mitigation_matrix"`
	LikelihoodMatrix map[Severity]map[Likelihood]MatrixCell `json:"likelihood_matrix"`
	Summary          string                                 `json:"summary_markdown"`
	Recommendations  []Recommendation                       `json:"recommendations"`
	Deterministic    bool                                   `json:"deterministic"`
}

// BuildAnalyticsFromMarkdown derives analytics entirely from a
// generator report (best-effort mode). The markdown must already have
// been through Normalize; untrusted generator output is never parsed
// raw.
func BuildAnalyticsFromMarkdown(normalized string) Analytics {
	findings := ParseFindings(normalized)
	return buildAnalytics(ComputeTotals(findings), normalized, false)
}

// BuildDeterministicAnalytics scores strictly from baseline findings
// while keeping the generator markdown as narrative text only. This is
// the mode whose score the dashboard displays; the markdown is never
// re-scored.
func BuildDeterministicAnalytics(findings []Finding, markdown string) Analytics {
	return buildAnalytics(ComputeTotals(findings), markdown, true)
}

// buildAnalytics is the single assembly point: every analytics object,
// whichever path produced it, takes its numbers from ComputeTotals.
func buildAnalytics(totals RiskTotals, markdown string, deterministic bool) Analytics {
	counts := map[Severity]int{}
	for sev, bd := range totals.BySeverity {
		counts[sev] = bd.Count
	}
	recs := make([]Recommendation, 0, len(totals.TableRows))
	for _, row := range totals.TableRows {
		recs = append(recs, Recommendation{
			Title:     row.Text,
			Severity:  row.Severity.Title(),
			Status:    recommendationStatus(row.Mitigation),
			Rationale: row.Formula,
		})
	}
	return Analytics{
		Score:            totals.PostureScore,
		OverallPct:       totals.OverallPct,
		SeverityCounts:   counts,
		MitigationMatrix: totals.MitigationMatrix,
		LikelihoodMatrix: totals.LikelihoodMatrix,
		Summary:          markdown,
		Recommendations:  recs,
		Deterministic:    deterministic,
	}
}

func recommendationStatus(m Mitigation) string {
	switch m {
	case MitigationFull:
		return "implemented"
	case MitigationPartial:
		return "partial"
	}
	return "open"
}

// Report returns a plain-text console summary of the analytics.
func (a Analytics) Report() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Security Posture Score: %d/100 (residual risk %d%%)\n", a.Score, a.OverallPct))
	sb.WriteString("--------------------------------------------------\n")
	for _, sev := range scoredSeverities {
		if n := a.SeverityCounts[sev]; n > 0 {
			sb.WriteString(fmt.Sprintf("%-8s %d finding(s)\n", sev.Title(), n))
		}
	}
	if len(a.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, r := range a.Recommendations {
			sb.WriteString(fmt.Sprintf("  [%s/%s] %s\n", r.Severity, r.Status, r.Title))
		}
	}
	return sb.String()
}
