package audit

import (
	"regexp"
	"strings"
)

// answerState is the normalized meaning of a question's selected
// options. The "no rule matched" and "not applicable" cases are
// explicit variants rather than nils so the classifier stays total.
type answerState int

const (
	stateYes answerState = iota
	statePartial
	stateNo
	stateExclude
	stateContradiction
)

// ControlRule maps a question-text pattern onto a control label and
// severity. Rules are evaluated top to bottom; the first matching rule
// wins and unmatched questions are informational (no finding).
// The rule list is fixed at build time.
type ControlRule struct {
	Pattern  *regexp.Regexp
	Label    string
	Severity Severity

	// Classify overrides the generic option normalization for rules
	// whose answer options carry special semantics. Nil means generic.
	Classify func(options []string) answerState
}

// controlRules is the ordered ground-truth rule table. Order matters:
// a question mentioning both key management and signatures must hit
// the key-management rule first.
var controlRules = []ControlRule{
	{Pattern: regexp.MustCompile(`(?i)private key|key management|key custod`), Label: "Key management", Severity: SeverityCritical},
	{Pattern: regexp.MustCompile(`(?i)access control|role-based|ownership`), Label: "Access control", Severity: SeverityHigh},
	{Pattern: regexp.MustCompile(`(?i)upgradeab`), Label: "Upgradeability safeguards", Severity: SeverityHigh, Classify: classifyUpgradeableAnswer},
	{Pattern: regexp.MustCompile(`(?i)cryptographic techniques|cryptograph`), Label: "Cryptographic practices", Severity: SeverityHigh, Classify: classifyCryptoAnswer},
	{Pattern: regexp.MustCompile(`(?i)multi-?sig|timelock`), Label: "Privileged operation safeguards", Severity: SeverityHigh},
	{Pattern: regexp.MustCompile(`(?i)oracle`), Label: "Oracle manipulation defenses", Severity: SeverityHigh},
	{Pattern: regexp.MustCompile(`(?i)flash loan`), Label: "Flash-loan attack defenses", Severity: SeverityHigh},
	{Pattern: regexp.MustCompile(`(?i)re-?entrancy`), Label: "Re-entrancy protections", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)integer overflow|arithmetic overflow|safemath`), Label: "Arithmetic overflow protections", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)front-?running|mev`), Label: "Front-running protections", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)denial[- ]of[- ]service|\bdos\b`), Label: "Denial-of-service resilience", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)input validation|sanitiz`), Label: "Input validation", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)randomness|\brng\b`), Label: "Secure randomness", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)signature replay|replay attack`), Label: "Signature replay protections", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)third[- ]party audit|external audit|independent audit`), Label: "Independent security audit", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)test coverage|unit test|automated test`), Label: "Automated testing", Severity: SeverityMedium},
	{Pattern: regexp.MustCompile(`(?i)incident response|monitoring|alerting`), Label: "Incident response readiness", Severity: SeverityLow},
	{Pattern: regexp.MustCompile(`(?i)dependenc|third[- ]party librar`), Label: "Dependency hygiene", Severity: SeverityLow},
}

// matchControlRule returns the first rule whose pattern matches the
// question text, or nil when the question is informational.
func matchControlRule(question string) *ControlRule {
	for i := range controlRules {
		if controlRules[i].Pattern.MatchString(question) {
			return &controlRules[i]
		}
	}
	return nil
}

var notApplicableStrings = map[string]bool{
	"n/a":            true,
	"na":             true,
	"n.a.":           true,
	"not applicable": true,
}

// classifyAnswer is the generic single-choice normalization. Any option
// starting with "yes" reads as implemented, "partial*" as partial,
// exactly "no" as a gap. An explicit N/A excludes the question only
// when selected alone; N/A combined with a positive answer, or more
// than one of yes/partial/no selected at once, is a contradiction that
// must be flagged for manual review.
func classifyAnswer(options []string) answerState {
	return classifyWithNA(options, nil)
}

func classifyWithNA(options []string, extraNA map[string]bool) answerState {
	var yes, partial, no, na bool
	for _, opt := range options {
		o := strings.ToLower(strings.TrimSpace(opt))
		switch {
		case notApplicableStrings[o] || extraNA[o]:
			na = true
		case strings.HasPrefix(o, "yes"):
			yes = true
		case strings.HasPrefix(o, "partial"):
			partial = true
		case o == "no":
			no = true
		}
	}
	if na {
		if yes || partial || no {
			return stateContradiction
		}
		return stateExclude
	}
	selected := 0
	for _, v := range []bool{yes, partial, no} {
		if v {
			selected++
		}
	}
	switch {
	case selected > 1:
		return stateContradiction
	case yes:
		return stateYes
	case partial:
		return statePartial
	case no:
		return stateNo
	}
	// Empty or unrecognized selections carry no signal.
	return stateExclude
}

// classifyUpgradeableAnswer treats the questionnaire's dedicated
// opt-out option as N/A, with the same alone-vs-combined semantics as
// a plain N/A.
func classifyUpgradeableAnswer(options []string) answerState {
	return classifyWithNA(options, map[string]bool{
		"we do not use upgradeable contracts": true,
	})
}

// classifyCryptoAnswer handles the cryptographic-techniques
// multi-select: picking "None" is the gap, naming any primitive in use
// carries no penalty, and an empty selection excludes the question.
func classifyCryptoAnswer(options []string) answerState {
	if len(options) == 0 {
		return stateExclude
	}
	for _, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), "none") {
			return stateNo
		}
	}
	return stateYes
}
