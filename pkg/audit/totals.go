package audit

import (
	"fmt"
	"math"
)

// maxLikelihoodWeight is the ceiling used for the worst-case
// denominator: every finding scored as if it were very likely and
// completely unmitigated.
const maxLikelihoodWeight = 5

// SeverityBreakdown is the per-severity slice of the totals.
type SeverityBreakdown struct {
	Adjusted float64 `json:"adjusted"`
	Count    int     `json:"count"`
}

// MatrixCell is one severity×likelihood heatmap cell.
type MatrixCell struct {
	Adjusted float64 `json:"adjusted"`
	Max      float64 `json:"max"`
	Count    int     `json:"count"`
}

// TableRow is the per-finding scoring row shown in report tables.
type TableRow struct {
	Text       string     `json:"text"`
	Severity   Severity   `json:"severity"`
	Likelihood Likelihood `json:"likelihood"`
	Mitigation Mitigation `json:"mitigation"`
	Adjusted   float64    `json:"adjusted"`
	Max        float64    `json:"max"`
	Formula    string     `json:"formula"`
	Status     string     `json:"status"`
}

// RiskTotals aggregates a finding list into weighted residual-risk
// numbers. Lower OverallPct is better; higher PostureScore is better.
type RiskTotals struct {
	TotalAdjusted    float64                                `json:"total_adjusted"`
	TotalMax         float64                                `json:"total_max"`
	OverallPct       int                                    `json:"overall_pct"`
	PostureScore     int                                    `json:"posture_score"`
	BySeverity       map[Severity]SeverityBreakdown         `json:"by_severity"`
	MitigationMatrix map[Severity]map[Mitigation]int        `json:"mitigation_matrix"`
	LikelihoodMatrix map[Severity]map[Likelihood]MatrixCell `json:"likelihood_matrix"`
	TableRows        []TableRow                             `json:"table_rows"`
}

// statusLabel maps mitigation onto the report status column.
func statusLabel(m Mitigation) string {
	switch m {
	case MitigationFull:
		return "Resolved"
	case MitigationPartial:
		return "In Progress"
	}
	return "Unmitigated"
}

// ComputeTotals derives RiskTotals from a list of findings in a single
// pass. It is pure and order-invariant: any permutation of the input
// yields identical totals. Findings with unknown severity are excluded
// from all aggregates; info findings never contribute to risk totals.
// Unknown likelihood and mitigation fall back to possible and none.
func ComputeTotals(findings []Finding) RiskTotals {
	totals := RiskTotals{
		BySeverity:       map[Severity]SeverityBreakdown{},
		MitigationMatrix: map[Severity]map[Mitigation]int{},
		LikelihoodMatrix: map[Severity]map[Likelihood]MatrixCell{},
		TableRows:        []TableRow{},
	}

	for _, f := range findings {
		if f.Severity == SeverityUnknown || f.Severity.Weight() == 0 {
			continue
		}
		likelihood := f.Likelihood
		if likelihood.Weight() == 0 {
			likelihood = LikelihoodPossible
		}
		mitigation := f.Mitigation
		if _, ok := mitigationFactors[mitigation]; !ok {
			mitigation = MitigationNone
		}

		sw := f.Severity.Weight()
		lw := likelihood.Weight()
		mf := mitigation.Factor()
		adjusted := float64(sw) * float64(lw) * mf
		max := float64(sw) * maxLikelihoodWeight

		totals.TableRows = append(totals.TableRows, TableRow{
			Text:       f.Text,
			Severity:   f.Severity,
			Likelihood: likelihood,
			Mitigation: mitigation,
			Adjusted:   adjusted,
			Max:        max,
			Formula:    fmt.Sprintf("%d × %d × %.1f = %.1f", sw, lw, mf, adjusted),
			Status:     statusLabel(mitigation),
		})

		if f.Severity == SeverityInfo {
			// Info findings appear in the table but carry no risk.
			continue
		}

		totals.TotalAdjusted += adjusted
		totals.TotalMax += max

		bd := totals.BySeverity[f.Severity]
		bd.Adjusted += adjusted
		bd.Count++
		totals.BySeverity[f.Severity] = bd

		if totals.MitigationMatrix[f.Severity] == nil {
			totals.MitigationMatrix[f.Severity] = map[Mitigation]int{}
		}
		totals.MitigationMatrix[f.Severity][mitigation]++

		if totals.LikelihoodMatrix[f.Severity] == nil {
			totals.LikelihoodMatrix[f.Severity] = map[Likelihood]MatrixCell{}
		}
		cell := totals.LikelihoodMatrix[f.Severity][likelihood]
		cell.Adjusted += adjusted
		cell.Max += max
		cell.Count++
		totals.LikelihoodMatrix[f.Severity][likelihood] = cell
	}

	if totals.TotalMax > 0 {
		totals.OverallPct = int(math.Round(totals.TotalAdjusted / totals.TotalMax * 100))
	}
	totals.PostureScore = 100 - totals.OverallPct
	if totals.PostureScore < 0 {
		totals.PostureScore = 0
	}
	if totals.PostureScore > 100 {
		totals.PostureScore = 100
	}
	return totals
}
