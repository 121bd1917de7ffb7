package audit

import (
	"fmt"
	"strings"
)

// Normalizer limits. These are part of the report contract; changing
// them silently changes stored audit documents.
const (
	summaryCharLimit      = 450
	summaryOversizeLimit  = 600
	recommendationLimit   = 220
	maxRecommendations    = 12
	emptyMarkdownWarning  = "Markdown was empty; created a minimal skeleton."
	defaultSummaryBody    = "No summary was provided."
	defaultRecommendation = "Maintain regular security reviews and re-run this audit after significant contract changes."
	ellipsis              = "…"
)

// scoredSeverities is the canonical section order of the report body.
var scoredSeverities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

var sectionIcons = map[Severity]string{
	SeverityCritical: "🛑",
	SeverityHigh:     "🚨",
	SeverityMedium:   "⚠️",
	SeverityLow:      "🟡",
}

var sectionPlaceholders = map[Severity]string{
	SeverityCritical: "_No significant critical issues found._",
	SeverityHigh:     "_No significant high issues found._",
	SeverityMedium:   "_No significant medium issues found._",
	SeverityLow:      "_No significant low issues found._",
}

// defaultLikelihoods supplies the per-severity likelihood applied when
// a bullet carries no usable likelihood tag.
var defaultLikelihoods = map[Severity]Likelihood{
	SeverityCritical: LikelihoodLikely,
	SeverityHigh:     LikelihoodLikely,
	SeverityMedium:   LikelihoodPossible,
	SeverityLow:      LikelihoodUnlikely,
}

type sectionKind int

const (
	sectionPreamble sectionKind = iota
	sectionSummary
	sectionSeverity
	sectionRecommendations
	sectionIgnored
)

// Normalize repairs arbitrary generator markdown into the canonical
// audit report document and returns it together with one warning per
// repair performed. It never fails: empty or unrecognizable input
// degrades to a minimal skeleton. Normalize is idempotent — feeding
// its own output back produces byte-identical output.
func Normalize(markdown string) (string, []string) {
	warnings := []string{}

	if strings.TrimSpace(markdown) == "" {
		return renderDocument(defaultSummaryBody, map[Severity][]string{}, []string{"- " + defaultRecommendation}),
			[]string{emptyMarkdownWarning}
	}

	var (
		summaryParts []string
		bullets      = map[Severity][]string{}
		recs         []string
		kind         = sectionPreamble
		severity     Severity
		seen         = map[Severity]bool{}
	)

	appendBulletLine := func(list []string, line string) []string {
		if b := bulletRx.FindStringSubmatch(line); b != nil {
			return append(list, b[1])
		}
		// Continuation of a multi-line bullet; join onto the previous
		// entry so every finding ends up on one line. Stray prose with
		// no preceding bullet (placeholders included) is dropped.
		if len(list) > 0 {
			list[len(list)-1] += " " + strings.TrimSpace(line)
		}
		return list
	}

	for _, line := range strings.Split(markdown, "\n") {
		if h := headingRx.FindStringSubmatch(line); h != nil {
			title := h[2]
			lower := strings.ToLower(title)
			switch {
			case strings.Contains(lower, "recommendation"):
				kind = sectionRecommendations
			case strings.Contains(lower, "summary"):
				kind = sectionSummary
			default:
				if sev := classifyHeading(title); sev == SeverityInfo {
					kind = sectionIgnored
					warnings = append(warnings, "Dropped informational section; info findings are not scored.")
				} else if sev != SeverityUnknown {
					kind = sectionSeverity
					severity = sev
					seen[sev] = true
				} else {
					kind = sectionIgnored
					warnings = append(warnings, fmt.Sprintf("Dropped unrecognized section %q.", collapseSpace(title)))
				}
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch kind {
		case sectionPreamble, sectionSummary:
			summaryParts = append(summaryParts, strings.TrimSpace(line))
		case sectionSeverity:
			bullets[severity] = appendBulletLine(bullets[severity], line)
		case sectionRecommendations:
			recs = appendBulletLine(recs, line)
		}
	}

	summary, ws := normalizeSummary(summaryParts)
	warnings = append(warnings, ws...)

	normalized := map[Severity][]string{}
	for _, sev := range scoredSeverities {
		lines, ws := normalizeSectionBullets(sev, bullets[sev])
		warnings = append(warnings, ws...)
		if len(lines) == 0 && !seen[sev] {
			warnings = append(warnings, fmt.Sprintf("%s Severity section was missing; inserted a placeholder.", sev.Title()))
		}
		normalized[sev] = lines
	}

	recLines, ws := normalizeRecommendations(recs)
	warnings = append(warnings, ws...)

	return renderDocument(summary, normalized, recLines), warnings
}

func normalizeSummary(parts []string) (string, []string) {
	var warnings []string
	summary := collapseSpace(strings.Join(parts, " "))
	// A body starting with '#' would re-parse as a heading; strip it so
	// re-normalizing stays a no-op.
	summary = strings.TrimLeft(summary, "# ")
	if summary == "" {
		return defaultSummaryBody, []string{"Summary was missing; inserted a default summary."}
	}
	runes := []rune(summary)
	if len(runes) > summaryCharLimit {
		if len(runes) > summaryOversizeLimit {
			warnings = append(warnings, fmt.Sprintf("Summary was %d characters, well over the %d-character limit.", len(runes), summaryCharLimit))
		}
		summary = string(runes[:summaryCharLimit]) + ellipsis
		warnings = append(warnings, fmt.Sprintf("Summary truncated to %d characters.", summaryCharLimit))
	}
	return summary, warnings
}

func normalizeSectionBullets(sev Severity, raw []string) ([]string, []string) {
	var lines, warnings []string
	for _, entry := range raw {
		text, likelihood, mitigation := takeTags(entry)
		text = collapseSpace(stripLeadingIcons(text))
		if text == "" {
			warnings = append(warnings, fmt.Sprintf("Dropped an empty bullet in the %s Severity section.", sev.Title()))
			continue
		}
		if likelihood == LikelihoodUnknown {
			likelihood = defaultLikelihoods[sev]
			warnings = append(warnings, fmt.Sprintf("%s finding %q had no valid likelihood tag; defaulted to %s.", sev.Title(), text, likelihood.Title()))
		}
		if mitigation == MitigationUnknown {
			mitigation = MitigationNone
			warnings = append(warnings, fmt.Sprintf("%s finding %q had no valid mitigation tag; defaulted to None.", sev.Title(), text))
		}
		lines = append(lines, fmt.Sprintf("- %s %s [Likelihood: %s] [Mitigation: %s]",
			sectionIcons[sev], text, likelihood.Title(), mitigation.Title()))
	}
	return lines, warnings
}

func normalizeRecommendations(raw []string) ([]string, []string) {
	var lines, warnings []string
	for _, entry := range raw {
		if likelihoodTagRx.MatchString(entry) || mitigationTagRx.MatchString(entry) {
			warnings = append(warnings, "Removed stray likelihood/mitigation tags from a recommendation.")
		}
		text, _, _ := takeTags(entry)
		text = collapseSpace(stripLeadingIcons(text))
		if text == "" {
			continue
		}
		runes := []rune(text)
		if len(runes) > recommendationLimit {
			text = string(runes[:recommendationLimit]) + ellipsis
			warnings = append(warnings, fmt.Sprintf("Recommendation truncated to %d characters.", recommendationLimit))
		}
		lines = append(lines, "- "+text)
	}
	if len(lines) > maxRecommendations {
		warnings = append(warnings, fmt.Sprintf("Capped recommendations at %d (dropped %d).", maxRecommendations, len(lines)-maxRecommendations))
		lines = lines[:maxRecommendations]
	}
	if len(lines) == 0 {
		lines = []string{"- " + defaultRecommendation}
		warnings = append(warnings, "No recommendations found; added a default recommendation.")
	}
	return lines, warnings
}

// renderDocument assembles the canonical report. Section order and
// spacing are fixed so repeated normalization is byte-stable.
func renderDocument(summary string, bullets map[Severity][]string, recommendations []string) string {
	var sb strings.Builder
	sb.WriteString("# 🧾 Audit Summary\n\n")
	sb.WriteString(summary)
	sb.WriteString("\n")
	for _, sev := range scoredSeverities {
		sb.WriteString(fmt.Sprintf("\n## %s %s Severity\n\n", sectionIcons[sev], sev.Title()))
		if len(bullets[sev]) == 0 {
			sb.WriteString(sectionPlaceholders[sev])
			sb.WriteString("\n")
			continue
		}
		for _, line := range bullets[sev] {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n## ✅ Tailored Actionable Recommendations\n\n")
	for _, line := range recommendations {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
