package audit

import (
	"fmt"
	"sort"
)

// Escalation heuristic constants. These are load-bearing for score
// parity with historical audits and must not be tuned.
const (
	escalationMinApplicable = 5
	escalationNoRatio       = 0.8
)

const contradictionNote = " (Contradictory answers selected; flagged for manual review.)"

const widespreadAbsenceText = "Widespread absence of baseline controls: most applicable security controls are reported as missing."

// BuildBaselineFindings derives findings directly from questionnaire
// answers, with no text generation involved. This is the audit's
// deterministic ground-truth score: the same responses always produce
// the same findings regardless of generator variance. Questions are
// processed in sorted order so output order is stable. The userType
// tag is accepted for interface parity with the prompt formatter; the
// rule table does not branch on it.
func BuildBaselineFindings(responses map[string][]string, userType string) []Finding {
	questions := make([]string, 0, len(responses))
	for q := range responses {
		questions = append(questions, q)
	}
	sort.Strings(questions)

	var findings []Finding
	applicable, missing := 0, 0

	for _, question := range questions {
		rule := matchControlRule(question)
		if rule == nil {
			continue
		}
		classify := rule.Classify
		if classify == nil {
			classify = classifyAnswer
		}
		state := classify(responses[question])
		if state == stateExclude {
			continue
		}
		applicable++
		if state == stateYes {
			continue
		}
		if state == stateNo {
			missing++
		}
		findings = append(findings, baselineFinding(rule, question, state))
	}

	// One synthetic escalation signal on top of the per-question
	// findings: a posture where nearly every applicable control is
	// absent is worse than the sum of its parts.
	if applicable >= escalationMinApplicable &&
		float64(missing)/float64(applicable) >= escalationNoRatio {
		findings = append(findings, Finding{
			Severity:   SeverityCritical,
			Likelihood: LikelihoodVeryLikely,
			Mitigation: MitigationNone,
			Text:       widespreadAbsenceText,
		})
	}
	return findings
}

func baselineFinding(rule *ControlRule, question string, state answerState) Finding {
	mitigation := MitigationNone
	text := fmt.Sprintf("Control missing: %s — %s", rule.Label, question)
	if state == statePartial || state == stateContradiction {
		mitigation = MitigationPartial
		text = fmt.Sprintf("Control partially implemented: %s — %s", rule.Label, question)
	}
	if state == stateContradiction {
		text += contradictionNote
	}
	return Finding{
		Severity:   rule.Severity,
		Likelihood: baselineLikelihood(rule.Severity, state),
		Mitigation: mitigation,
		Text:       text,
	}
}

// baselineLikelihood derives likelihood from severity and answer
// state: a missing critical control is very likely to bite, a
// partially implemented high control merely possible, and medium/low
// controls always read as possible.
func baselineLikelihood(severity Severity, state answerState) Likelihood {
	switch severity {
	case SeverityCritical:
		if state == stateNo {
			return LikelihoodVeryLikely
		}
		return LikelihoodLikely
	case SeverityHigh:
		if state == stateNo {
			return LikelihoodLikely
		}
		return LikelihoodPossible
	}
	return LikelihoodPossible
}
