package audit

import "strings"

// Severity represents the impact tier of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	// SeverityUnknown marks a severity string that matched no tier.
	// Findings with unknown severity never enter the risk totals.
	SeverityUnknown Severity = ""
)

// Likelihood represents the probability tier of a finding occurring.
type Likelihood string

const (
	LikelihoodVeryLikely Likelihood = "very likely"
	LikelihoodLikely     Likelihood = "likely"
	LikelihoodPossible   Likelihood = "possible"
	LikelihoodUnlikely   Likelihood = "unlikely"
	LikelihoodRare       Likelihood = "rare"
	LikelihoodUnknown    Likelihood = ""
)

// Mitigation represents how far a finding is already addressed.
type Mitigation string

const (
	MitigationNone    Mitigation = "none"
	MitigationPartial Mitigation = "partial"
	MitigationFull    Mitigation = "full"
	MitigationUnknown Mitigation = ""
)

// Finding is a single classified security observation. It is immutable
// once created: the parser and the baseline builder produce findings,
// the totals engine only reads them.
type Finding struct {
	Severity   Severity   `json:"severity"`
	Likelihood Likelihood `json:"likelihood"`
	Mitigation Mitigation `json:"mitigation"`
	Text       string     `json:"text"`
}

// Weight tables. These constants must stay identical across every
// consumer so scores remain comparable across audits.
var severityWeights = map[Severity]int{
	SeverityCritical: 5,
	SeverityHigh:     4,
	SeverityMedium:   3,
	SeverityLow:      2,
	SeverityInfo:     1,
}

var likelihoodWeights = map[Likelihood]int{
	LikelihoodVeryLikely: 5,
	LikelihoodLikely:     4,
	LikelihoodPossible:   3,
	LikelihoodUnlikely:   2,
	LikelihoodRare:       1,
}

var mitigationFactors = map[Mitigation]float64{
	MitigationNone:    1.0,
	MitigationPartial: 0.5,
	MitigationFull:    0.0,
}

// Weight returns the numeric weight for a severity, or 0 for unknown.
func (s Severity) Weight() int { return severityWeights[s] }

// Weight returns the numeric weight for a likelihood, or 0 for unknown.
func (l Likelihood) Weight() int { return likelihoodWeights[l] }

// Factor returns the residual-risk multiplier for a mitigation state.
func (m Mitigation) Factor() float64 { return mitigationFactors[m] }

// Title returns the display form of a severity ("Critical", "High", ...).
func (s Severity) Title() string { return titleCase(string(s)) }

// Title returns the display form of a likelihood ("Very Likely", ...).
func (l Likelihood) Title() string { return titleCase(string(l)) }

// Title returns the display form of a mitigation ("None", "Partial", "Full").
func (m Mitigation) Title() string { return titleCase(string(m)) }

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseSeverity maps a free-form severity string onto the closed enum.
// Unrecognized values return SeverityUnknown, never an error.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	case "medium":
		return SeverityMedium
	case "low":
		return SeverityLow
	case "info", "informational":
		return SeverityInfo
	}
	return SeverityUnknown
}

// ParseLikelihood maps a free-form likelihood string onto the closed enum.
func ParseLikelihood(s string) Likelihood {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "very likely":
		return LikelihoodVeryLikely
	case "likely":
		return LikelihoodLikely
	case "possible":
		return LikelihoodPossible
	case "unlikely":
		return LikelihoodUnlikely
	case "rare":
		return LikelihoodRare
	}
	return LikelihoodUnknown
}

// ParseMitigation maps a free-form mitigation string onto the closed enum.
// Accepts the long forms the generator tends to produce.
func ParseMitigation(s string) Mitigation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "fully mitigated":
		return MitigationFull
	case "partial", "partially mitigated":
		return MitigationPartial
	case "none", "no mitigation":
		return MitigationNone
	}
	return MitigationUnknown
}
