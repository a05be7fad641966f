package judge_test

import (
	"testing"

	"github.com/gridprobe/faceoff/internal/judge"
)

func strPtr(s string) *string { return &s }

func TestDecideNilAnswer(t *testing.T) {
	j := judge.Containment{}
	if j.Decide("anything", nil) {
		t.Error("a failed call must never pass")
	}
}

func TestDecideNumeric(t *testing.T) {
	j := judge.Containment{}
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"exact with separators", "630,720 MWh", "The annual energy is 630,720 MWh.", true},
		{"separators stripped", "630,720 MWh", "Annual output: 630720 MWh", true},
		{"within 1% tolerance", "630,720 MWh", "approximately 634,000 MWh", true},
		{"outside tolerance", "630,720 MWh", "about 700,000 MWh", false},
		{"percentage", "42%", "The average capacity factor is 42%", true},
		{"percentage as decimal prose", "42%", "roughly 42 percent", true},
		{"small decimal", "0.0104 SAR/kWh", "The lowest tariff is 0.0104 SAR/kWh", true},
		{"small decimal off", "0.0104 SAR/kWh", "The lowest tariff is 0.0150 SAR/kWh", false},
		{"billion scaling", "12.5 billion SAR", "Total budget: 12.5 billion SAR", true},
		{"billion expanded", "12.5 billion SAR", "Total budget: 12,500,000,000 SAR", true},
		{"large exact", "55,296,144 SAR", "Revenue = 55,296,144 SAR", true},
		{"no numbers in answer", "2,500 MW", "I cannot determine the capacity.", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := j.Decide(tt.expected, strPtr(tt.actual)); got != tt.want {
				t.Errorf("Decide(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestDecideTextual(t *testing.T) {
	j := judge.Containment{}
	tests := []struct {
		name     string
		expected string
		actual   string
		want     bool
	}{
		{"all tokens present", "Bifacial modules with single-axis tracking", "Round 7 requires bifacial modules with single-axis tracking.", true},
		{"missing token", "Bifacial modules with single-axis tracking", "Round 7 requires monofacial modules.", false},
		{"case insensitive", "January 15, 2025", "the rfq issuance date is JANUARY 15, 2025", true},
		{"date wrong year", "January 15, 2025", "the rfq issuance date is January 15, 2024", false},
		{"short yes", "Yes", "Yes, the region can support it.", true},
		{"short yes absent", "Yes", "It cannot support that capacity.", false},
		{"region list", "Northern, Central, Eastern, Western", "Planned capacity spans the Northern, Central, Eastern and Western regions.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := j.Decide(tt.expected, strPtr(tt.actual)); got != tt.want {
				t.Errorf("Decide(%q, %q) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestDecideDeterministic(t *testing.T) {
	j := judge.Containment{}
	expected := "630,720 MWh"
	actual := strPtr("roughly 630,000 MWh")
	first := j.Decide(expected, actual)
	for i := 0; i < 10; i++ {
		if j.Decide(expected, actual) != first {
			t.Fatal("verdict changed between identical calls")
		}
	}
}

func TestCustomTolerance(t *testing.T) {
	loose := judge.Containment{Tolerance: 0.10}
	strict := judge.Containment{Tolerance: 0.001}
	actual := strPtr("around 660,000 MWh")
	if !loose.Decide("630,720 MWh", actual) {
		t.Error("10% tolerance should accept 660,000 for 630,720")
	}
	if strict.Decide("630,720 MWh", actual) {
		t.Error("0.1% tolerance should reject 660,000 for 630,720")
	}
}
