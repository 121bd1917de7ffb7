package audit

import "fmt"

// RenderFindings produces the canonical report document for a finding
// list, grouping findings into the fixed severity sections with the
// standard bullet format. The output round-trips: ParseFindings on the
// rendered document reproduces every non-info finding's severity,
// likelihood, mitigation, and text, and Normalize on it is a no-op.
// Info findings have no canonical section and are omitted.
func RenderFindings(summary string, findings []Finding) string {
	bullets := map[Severity][]string{}
	for _, f := range findings {
		icon, ok := sectionIcons[f.Severity]
		if !ok {
			continue
		}
		likelihood := f.Likelihood
		if likelihood.Weight() == 0 {
			likelihood = LikelihoodPossible
		}
		mitigation := f.Mitigation
		if _, valid := mitigationFactors[mitigation]; !valid {
			mitigation = MitigationNone
		}
		bullets[f.Severity] = append(bullets[f.Severity], fmt.Sprintf(
			"- %s %s [Likelihood: %s] [Mitigation: %s]",
			icon, f.Text, likelihood.Title(), mitigation.Title()))
	}
	summary = collapseSpace(summary)
	if summary == "" {
		summary = defaultSummaryBody
	}
	if r := []rune(summary); len(r) > summaryCharLimit {
		summary = string(r[:summaryCharLimit]) + ellipsis
	}
	return renderDocument(summary, bullets, []string{"- " + defaultRecommendation})
}
