package audit

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildBaselineFindings_ReentrancyMissing(t *testing.T) {
	responses := map[string][]string{
		"Does the smart contract include mechanisms to prevent re-entrancy attacks?": {"No"},
	}
	findings := BuildBaselineFindings(responses, "developer")
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Severity != SeverityMedium || f.Mitigation != MitigationNone || f.Likelihood != LikelihoodPossible {
		t.Errorf("got %+v; want medium/none/possible", f)
	}
	if !strings.HasPrefix(f.Text, "Control missing: Re-entrancy protections —") {
		t.Errorf("text = %q", f.Text)
	}
}

func TestBuildBaselineFindings_YesProducesNoFinding(t *testing.T) {
	responses := map[string][]string{
		"Is role-based access control enforced for privileged functions?": {"Yes, on every entry point"},
	}
	if findings := BuildBaselineFindings(responses, "developer"); len(findings) != 0 {
		t.Errorf("yes answers must not produce findings, got %+v", findings)
	}
}

func TestBuildBaselineFindings_PartialAnswer(t *testing.T) {
	responses := map[string][]string{
		"Are private keys stored with a dedicated key management procedure?": {"Partially implemented"},
	}
	findings := BuildBaselineFindings(responses, "developer")
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Severity != SeverityCritical || f.Mitigation != MitigationPartial || f.Likelihood != LikelihoodLikely {
		t.Errorf("got %+v; want critical/partial/likely", f)
	}
	if !strings.HasPrefix(f.Text, "Control partially implemented: Key management —") {
		t.Errorf("text = %q", f.Text)
	}
}

func TestBuildBaselineFindings_LikelihoodDerivation(t *testing.T) {
	cases := []struct {
		question string
		answer   string
		want     Likelihood
	}{
		{"How are private keys protected?", "No", LikelihoodVeryLikely},
		{"How are private keys protected?", "Partial", LikelihoodLikely},
		{"Do you rely on a price oracle?", "No", LikelihoodLikely},
		{"Do you rely on a price oracle?", "Partial", LikelihoodPossible},
		{"Is input validation applied to user-supplied data?", "No", LikelihoodPossible},
	}
	for _, tc := range cases {
		findings := BuildBaselineFindings(map[string][]string{tc.question: {tc.answer}}, "")
		if len(findings) != 1 {
			t.Fatalf("%s/%s: expected 1 finding, got %d", tc.question, tc.answer, len(findings))
		}
		if findings[0].Likelihood != tc.want {
			t.Errorf("%s/%s: likelihood = %s; want %s", tc.question, tc.answer, findings[0].Likelihood, tc.want)
		}
	}
}

func TestBuildBaselineFindings_ContradictionFlagged(t *testing.T) {
	responses := map[string][]string{
		"Do you rely on a price oracle with manipulation defenses?": {"Yes", "No"},
	}
	findings := BuildBaselineFindings(responses, "")
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Mitigation != MitigationPartial {
		t.Errorf("contradiction must be treated as partial, got %s", f.Mitigation)
	}
	if !strings.Contains(f.Text, "flagged for manual review") {
		t.Errorf("contradiction note missing from %q", f.Text)
	}
}

func TestBuildBaselineFindings_NotApplicableExcluded(t *testing.T) {
	responses := map[string][]string{
		"Do you run automated test suites?": {"N/A"},
	}
	if findings := BuildBaselineFindings(responses, ""); len(findings) != 0 {
		t.Errorf("N/A alone must exclude the question, got %+v", findings)
	}
}

func TestBuildBaselineFindings_NotApplicableWithYesIsContradiction(t *testing.T) {
	responses := map[string][]string{
		"Do you run automated test suites?": {"N/A", "Yes"},
	}
	findings := BuildBaselineFindings(responses, "")
	if len(findings) != 1 || !strings.Contains(findings[0].Text, "flagged for manual review") {
		t.Errorf("N/A combined with a positive answer must contradict, got %+v", findings)
	}
}

func TestBuildBaselineFindings_UpgradeableOptOut(t *testing.T) {
	question := "Do you use upgradeable proxy contracts with appropriate safeguards?"

	alone := BuildBaselineFindings(map[string][]string{
		question: {"We do not use upgradeable contracts"},
	}, "")
	if len(alone) != 0 {
		t.Errorf("opt-out alone must exclude the question, got %+v", alone)
	}

	combined := BuildBaselineFindings(map[string][]string{
		question: {"We do not use upgradeable contracts", "Yes"},
	}, "")
	if len(combined) != 1 || !strings.Contains(combined[0].Text, "flagged for manual review") {
		t.Errorf("opt-out combined with yes must contradict, got %+v", combined)
	}
}

func TestBuildBaselineFindings_CryptoMultiSelect(t *testing.T) {
	question := "Which cryptographic techniques does your application rely on?"

	if f := BuildBaselineFindings(map[string][]string{question: {"ECDSA signatures", "Keccak hashing"}}, ""); len(f) != 0 {
		t.Errorf("naming primitives in use carries no penalty, got %+v", f)
	}

	gap := BuildBaselineFindings(map[string][]string{question: {"None"}}, "")
	if len(gap) != 1 {
		t.Fatalf("selecting None is a gap, got %d findings", len(gap))
	}
	if gap[0].Severity != SeverityHigh || gap[0].Mitigation != MitigationNone {
		t.Errorf("got %+v; want high/none", gap[0])
	}

	if f := BuildBaselineFindings(map[string][]string{question: {}}, ""); len(f) != 0 {
		t.Errorf("empty selection must exclude the question, got %+v", f)
	}
}

func TestBuildBaselineFindings_UnmatchedQuestionIsInformational(t *testing.T) {
	responses := map[string][]string{
		"What is the name of your project?": {"No"},
	}
	if findings := BuildBaselineFindings(responses, ""); len(findings) != 0 {
		t.Errorf("unmatched questions must never produce findings, got %+v", findings)
	}
}

// fiveApplicable builds an answer set with five questions that each hit
// a distinct control rule, answering "No" to the first n.
func fiveApplicable(n int) map[string][]string {
	questions := []string{
		"Does the smart contract include mechanisms to prevent re-entrancy attacks?",
		"Do you rely on a price oracle with manipulation defenses?",
		"Is role-based access control enforced for privileged functions?",
		"Do you maintain automated test suites for the contracts?",
		"Are private keys protected by a key management procedure?",
	}
	responses := map[string][]string{}
	for i, q := range questions {
		if i < n {
			responses[q] = []string{"No"}
		} else {
			responses[q] = []string{"Yes"}
		}
	}
	return responses
}

func TestBuildBaselineFindings_EscalationAtThreshold(t *testing.T) {
	findings := BuildBaselineFindings(fiveApplicable(4), "")
	var escalated bool
	for _, f := range findings {
		if strings.HasPrefix(f.Text, "Widespread absence") {
			escalated = true
			if f.Severity != SeverityCritical || f.Likelihood != LikelihoodVeryLikely || f.Mitigation != MitigationNone {
				t.Errorf("escalation finding = %+v; want critical/very likely/none", f)
			}
		}
	}
	if !escalated {
		t.Error("4 of 5 applicable answered No (80%) must trigger the escalation finding")
	}
}

func TestBuildBaselineFindings_NoEscalationBelowThreshold(t *testing.T) {
	for _, f := range BuildBaselineFindings(fiveApplicable(3), "") {
		if strings.HasPrefix(f.Text, "Widespread absence") {
			t.Fatal("3 of 5 applicable answered No (60%) must not trigger the escalation finding")
		}
	}
}

func TestBuildBaselineFindings_NoEscalationUnderFiveApplicable(t *testing.T) {
	responses := map[string][]string{
		"Does the smart contract include mechanisms to prevent re-entrancy attacks?": {"No"},
		"Do you rely on a price oracle with manipulation defenses?":                  {"No"},
		"Is role-based access control enforced for privileged functions?":           {"No"},
		"Do you maintain automated test suites for the contracts?":                  {"No"},
	}
	for _, f := range BuildBaselineFindings(responses, "") {
		if strings.HasPrefix(f.Text, "Widespread absence") {
			t.Fatal("fewer than 5 applicable questions must never escalate")
		}
	}
}

func TestBuildBaselineFindings_Deterministic(t *testing.T) {
	responses := fiveApplicable(2)
	first := BuildBaselineFindings(responses, "auditor")
	second := BuildBaselineFindings(responses, "auditor")
	if !reflect.DeepEqual(first, second) {
		t.Error("identical responses must produce identical findings in identical order")
	}
}
