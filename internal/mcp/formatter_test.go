package mcp

import (
	"strings"
	"testing"

	"github.com/szzz666/PalEasyBreeding/pkg/models"
)

func testPal(name, display string, rank int) models.Pal {
	return models.Pal{Name: name, DisplayName: display, CatalogNumber: "#1", Rank: rank, Priority: 3}
}

// --- ParseVerbosity ---

func TestParseVerbosity_Defaults(t *testing.T) {
	tests := []struct {
		input    string
		expected Verbosity
	}{
		{"summary", VerbositySummary},
		{"SUMMARY", VerbositySummary},
		{"full", VerbosityFull},
		{"Full", VerbosityFull},
		{"standard", VerbosityStandard},
		{"", VerbosityStandard},
		{"unknown", VerbosityStandard},
	}

	for _, tt := range tests {
		got := ParseVerbosity(tt.input)
		if got != tt.expected {
			t.Errorf("ParseVerbosity(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// --- ResponseBuilder ---

func TestResponseBuilder_DefaultMaxTokens(t *testing.T) {
	rb := NewResponseBuilder(0)
	if rb.maxTokens != defaultMaxTokens {
		t.Errorf("default max tokens should be %d, got %d", defaultMaxTokens, rb.maxTokens)
	}
}

func TestResponseBuilder_AddHeader(t *testing.T) {
	rb := NewResponseBuilder(1000)
	rb.AddHeader("# Test Header")
	result := rb.Finalize(0, 0)
	if !strings.Contains(result, "# Test Header") {
		t.Error("header should be present in output")
	}
	if rb.TokenEstimate() == 0 {
		t.Error("token estimate should be positive after adding header")
	}
}

func TestResponseBuilder_BudgetExceeded(t *testing.T) {
	rb := NewResponseBuilder(10)
	if !rb.AddLine("short") {
		t.Fatal("first short line should fit")
	}
	if rb.AddLine(strings.Repeat("x", 200)) {
		t.Error("line over budget should be rejected")
	}
	if !rb.IsTruncated() {
		t.Error("builder should be marked truncated")
	}
	out := rb.Finalize(5, 1)
	if !strings.Contains(out, "Showing 1 of 5") {
		t.Errorf("truncation notice missing: %q", out)
	}
}

func TestResponseBuilder_AddCombination_CountsItems(t *testing.T) {
	rb := NewResponseBuilder(1000)
	a, b, c := testPal("A", "", 1), testPal("B", "", 3), testPal("C", "", 2)
	combo := models.Combination{Step: models.Step{Parent1: a, Parent2: b, Child: c}}
	rb.AddCombination(1, combo, VerbosityStandard)
	rb.AddCombination(2, combo, VerbosityStandard)
	if rb.ItemCount() != 2 {
		t.Errorf("expected 2 items, got %d", rb.ItemCount())
	}
	if out := rb.Finalize(2, 2); strings.Contains(out, "Showing") {
		t.Errorf("complete output should not carry a truncation notice: %q", out)
	}
}

// --- Formatting ---

func TestPalLabel(t *testing.T) {
	if got := PalLabel(testPal("Lamball", "", 1)); got != "Lamball" {
		t.Errorf("got %q", got)
	}
	if got := PalLabel(testPal("Lamball", "棉悠悠", 1)); got != "棉悠悠 (Lamball)" {
		t.Errorf("got %q", got)
	}
}

func TestFormatStep_SexMarks(t *testing.T) {
	s := models.Step{
		Parent1: testPal("Katress", "", 700), Parent1Sex: models.SexFemale,
		Parent2: testPal("Wixen", "", 1160), Parent2Sex: models.SexMale,
		Child: testPal("Katress Ignis", "", 690),
	}
	want := "Katress ♀ + Wixen ♂ → Katress Ignis"
	if got := FormatStep(s); got != want {
		t.Errorf("FormatStep = %q, want %q", got, want)
	}
}

func TestFormatCombination_TwoStep(t *testing.T) {
	a, x, mid, y, target := testPal("A", "", 1), testPal("X", "", 2), testPal("M", "", 3), testPal("Y", "", 4), testPal("T", "", 5)
	combo := models.Combination{
		Step: models.Step{Parent1: a, Parent2: x, Child: target},
		Path: &models.Path{
			Step1: models.Step{Parent1: a, Parent2: x, Child: mid},
			Step2: models.Step{Parent1: mid, Parent2: y, Child: target},
		},
	}

	full := FormatCombination(3, combo, VerbosityStandard)
	for _, want := range []string{"3. via **M**", "1) A + X → M", "2) M + Y → T"} {
		if !strings.Contains(full, want) {
			t.Errorf("standard output missing %q:\n%s", want, full)
		}
	}

	summary := FormatCombination(3, combo, VerbositySummary)
	if strings.Contains(summary, "1)") {
		t.Errorf("summary output should omit steps:\n%s", summary)
	}
}

func TestFormatPalCard_Verbosity(t *testing.T) {
	p := testPal("Anubis", "", 570)
	p.ImageRef = "T_Anubis_icon_normal"

	if got := formatPalCard(p, true, VerbositySummary); !strings.Contains(got, "override only") {
		t.Errorf("special marker missing: %q", got)
	}
	if got := formatPalCard(p, false, VerbosityFull); !strings.Contains(got, "Priority: 3") || !strings.Contains(got, "T_Anubis_icon_normal") {
		t.Errorf("full card missing details: %q", got)
	}
	if got := formatPalCard(p, false, VerbosityStandard); strings.Contains(got, "Priority") {
		t.Errorf("standard card should omit priority: %q", got)
	}
}
