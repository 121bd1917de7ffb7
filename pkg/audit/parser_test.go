package audit

import (
	"reflect"
	"testing"
)

func TestParseFindings_BasicScenario(t *testing.T) {
	markdown := "# 🧾 Audit Summary\n\nGood posture.\n\n## 🛑 Critical Severity\n- SQL injection risk [Likelihood: Likely] [Mitigation: None]\n"

	findings := ParseFindings(markdown)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	want := Finding{
		Severity:   SeverityCritical,
		Likelihood: LikelihoodLikely,
		Mitigation: MitigationNone,
		Text:       "SQL injection risk",
	}
	if findings[0] != want {
		t.Errorf("got %+v; want %+v", findings[0], want)
	}
}

func TestParseFindings_UntaggedBulletGetsDefaults(t *testing.T) {
	findings := ParseFindings("## High Severity\n- Missing rate limiting\n")
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Likelihood != LikelihoodPossible || f.Mitigation != MitigationNone {
		t.Errorf("untagged bullet must default to possible/none, got %s/%s", f.Likelihood, f.Mitigation)
	}
}

func TestParseFindings_UnrecognizedHeadingClearsContext(t *testing.T) {
	markdown := "## 🔴 High Severity\n- Real finding\n## Random Notes\n- Not a finding\n"
	findings := ParseFindings(markdown)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding (bullets after unrecognized heading ignored), got %d", len(findings))
	}
	if findings[0].Text != "Real finding" {
		t.Errorf("got %q", findings[0].Text)
	}
}

func TestParseFindings_BulletMarkers(t *testing.T) {
	markdown := "## ⚠️ Medium Severity\n- dash finding\n* star finding\n• dot finding\n3. numbered finding\n"
	findings := ParseFindings(markdown)
	if len(findings) != 4 {
		t.Fatalf("Expected 4 findings, got %d", len(findings))
	}
	for _, f := range findings {
		if f.Severity != SeverityMedium {
			t.Errorf("finding %q classified as %s; want medium", f.Text, f.Severity)
		}
	}
}

func TestParseFindings_DuplicateTagsFirstMatchWins(t *testing.T) {
	markdown := "## 🟡 Low Severity\n- Weak logging [Likelihood: Likely] [likelihood: Very Likely] [Mitigation: Partial]\n"
	findings := ParseFindings(markdown)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].Likelihood != LikelihoodLikely {
		t.Errorf("first tag must win; got %s", findings[0].Likelihood)
	}
	if findings[0].Text != "Weak logging" {
		t.Errorf("all tag occurrences must be stripped; got %q", findings[0].Text)
	}
}

func TestParseFindings_StripsLeadingIcons(t *testing.T) {
	markdown := "## 🛑 Critical Severity\n- 🛑 🛑 Key leak [Likelihood: Rare] [Mitigation: Full]\n"
	findings := ParseFindings(markdown)
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].Text != "Key leak" {
		t.Errorf("duplicate icons must be stripped, got %q", findings[0].Text)
	}
}

func TestParseFindings_MalformedInputYieldsEmptyList(t *testing.T) {
	for _, input := range []string{"", "just prose\nno structure", "- orphan bullet before any heading"} {
		if findings := ParseFindings(input); len(findings) != 0 {
			t.Errorf("input %q: expected no findings, got %d", input, len(findings))
		}
	}
}

func TestParseFindings_Deterministic(t *testing.T) {
	markdown := "## 🚨 High Severity\n- A [Likelihood: Likely] [Mitigation: Partial]\n- B\n## ℹ️ Informational\n- note\n"
	first := ParseFindings(markdown)
	second := ParseFindings(markdown)
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing identical input twice must yield identical output")
	}
}

func TestParseFindings_InfoSectionRecognized(t *testing.T) {
	findings := ParseFindings("## ℹ️ Informational\n- Uses Solidity 0.8\n")
	if len(findings) != 1 || findings[0].Severity != SeverityInfo {
		t.Fatalf("expected one info finding, got %+v", findings)
	}
}

func TestRenderFindings_RoundTrip(t *testing.T) {
	original := []Finding{
		{Severity: SeverityCritical, Likelihood: LikelihoodVeryLikely, Mitigation: MitigationNone, Text: "Admin key is an EOA"},
		{Severity: SeverityHigh, Likelihood: LikelihoodLikely, Mitigation: MitigationPartial, Text: "Oracle uses a single price source"},
		{Severity: SeverityMedium, Likelihood: LikelihoodPossible, Mitigation: MitigationFull, Text: "Re-entrancy guard missing on legacy path"},
		{Severity: SeverityLow, Likelihood: LikelihoodRare, Mitigation: MitigationNone, Text: "Verbose revert strings"},
	}

	parsed := ParseFindings(RenderFindings("Posture summary.", original))
	if !reflect.DeepEqual(parsed, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, original)
	}
}

func TestRenderFindings_OutputIsNormalizeStable(t *testing.T) {
	doc := RenderFindings("Summary.", []Finding{
		{Severity: SeverityHigh, Likelihood: LikelihoodLikely, Mitigation: MitigationNone, Text: "Upgrade admin lacks timelock"},
	})
	normalized, warnings := Normalize(doc)
	if normalized != doc {
		t.Errorf("Normalize must be a no-op on rendered output:\n got %q\nwant %q", normalized, doc)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}
