package audit

import (
	"regexp"
	"strings"
)

// Regexes shared by the parser and the normalizer. Tag extraction is
// case-insensitive; when duplicate tags are present the first match in
// line order wins, and every occurrence is stripped from the text.
var (
	headingRx       = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	bulletRx        = regexp.MustCompile(`^\s*(?:[-*•]|\d+\.)\s+(.*)$`)
	likelihoodTagRx = regexp.MustCompile(`(?i)\[\s*likelihood\s*:\s*([^\]]*)\]`)
	mitigationTagRx = regexp.MustCompile(`(?i)\[\s*mitigation\s*:\s*([^\]]*)\]`)
)

// iconRunes are the section/bullet icons the pipeline emits or accepts.
// They are stripped from the front of bullet text so re-normalizing
// never stacks duplicate icons.
var iconRunes = map[rune]bool{
	'🛑': true, '🚨': true, '⚠': true, '🟠': true, '🟡': true,
	'🔴': true, '✅': true, 'ℹ': true, '🧾': true, '•': true,
	'️': true, // emoji variation selector
}

// ParseFindings extracts severity-tagged bullet findings from a
// markdown document. Malformed input never fails: text without any
// recognizable heading or bullet yields an empty list. Bullets outside
// a recognized severity section are ignored.
func ParseFindings(markdown string) []Finding {
	var findings []Finding
	current := SeverityUnknown

	for _, line := range strings.Split(markdown, "\n") {
		if h := headingRx.FindStringSubmatch(line); h != nil {
			// An unrecognized heading clears the severity context so
			// bullets under it (e.g. recommendations) are not scored.
			current = classifyHeading(h[2])
			continue
		}
		b := bulletRx.FindStringSubmatch(line)
		if b == nil || current == SeverityUnknown {
			continue
		}
		text, likelihood, mitigation := takeTags(b[1])
		text = collapseSpace(stripLeadingIcons(text))
		if text == "" {
			continue
		}
		// Untagged bullets are never dropped; they fall back to the
		// worst-reasonable-case defaults.
		if likelihood == LikelihoodUnknown {
			likelihood = LikelihoodPossible
		}
		if mitigation == MitigationUnknown {
			mitigation = MitigationNone
		}
		findings = append(findings, Finding{
			Severity:   current,
			Likelihood: likelihood,
			Mitigation: mitigation,
			Text:       text,
		})
	}
	return findings
}

// classifyHeading maps a heading onto a severity by keyword or icon.
// Returns SeverityUnknown for headings that belong to no severity
// section (summary, recommendations, anything else).
func classifyHeading(heading string) Severity {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "critical") || strings.Contains(h, "🛑"):
		return SeverityCritical
	case strings.Contains(h, "high") || strings.Contains(h, "🔴") || strings.Contains(h, "🚨"):
		return SeverityHigh
	case strings.Contains(h, "medium") || strings.Contains(h, "🟠") || strings.Contains(h, "⚠"):
		return SeverityMedium
	case strings.Contains(h, "low") || strings.Contains(h, "🟡"):
		return SeverityLow
	case strings.Contains(h, "info") || strings.Contains(h, "ℹ"):
		return SeverityInfo
	}
	return SeverityUnknown
}

// takeTags pulls the embedded [Likelihood: X] and [Mitigation: Y] tags
// out of a bullet, returning the de-tagged text. Missing or invalid
// tags come back as the unknown variants; callers decide the defaults.
func takeTags(text string) (string, Likelihood, Mitigation) {
	likelihood := LikelihoodUnknown
	if m := likelihoodTagRx.FindStringSubmatch(text); m != nil {
		likelihood = ParseLikelihood(m[1])
	}
	mitigation := MitigationUnknown
	if m := mitigationTagRx.FindStringSubmatch(text); m != nil {
		mitigation = ParseMitigation(m[1])
	}
	text = likelihoodTagRx.ReplaceAllString(text, "")
	text = mitigationTagRx.ReplaceAllString(text, "")
	return text, likelihood, mitigation
}

// stripLeadingIcons removes section icons and stray bullet glyphs from
// the front of a line.
func stripLeadingIcons(s string) string {
	for {
		s = strings.TrimLeft(s, " \t")
		r := []rune(s)
		if len(r) == 0 || !iconRunes[r[0]] {
			return s
		}
		s = string(r[1:])
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
