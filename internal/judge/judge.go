// Package judge decides pass/fail for a provider's raw answer against a
// test case's expected value. The default policy is containment with a
// numeric tolerance; alternative judges (exact match, LLM-graded) plug in
// behind the same Decider contract.
package judge

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Decider returns the verdict for an (expected, actual) pair. A nil actual
// means the provider call failed; that is never a pass. Implementations
// must be pure: identical inputs always yield the identical verdict.
type Decider interface {
	Decide(expected string, actual *string) bool
}

// Containment is the default judge: numeric expected values pass when the
// answer contains a number within Tolerance (relative); other expected
// values pass when every key token appears in the answer,
// case-insensitively.
type Containment struct {
	// Tolerance is the relative tolerance for numeric comparison.
	// Zero means the default of 1%.
	Tolerance float64
}

func (c Containment) tolerance() float64 {
	if c.Tolerance > 0 {
		return c.Tolerance
	}
	return 0.01
}

var numberPattern = regexp.MustCompile(`-?\d[\d,]*\.?\d*`)

func (c Containment) Decide(expected string, actual *string) bool {
	if actual == nil {
		return false
	}
	answer := strings.ToLower(*actual)
	if want, ok := numericExpected(expected); ok {
		return containsNumber(answer, want, c.tolerance())
	}
	return containsKeyTokens(answer, expected)
}

// numericExpected reports whether the expected value is a single number,
// tolerating thousands separators and a trailing unit suffix
// ("630,720 MWh", "42%", "0.0104 SAR/kWh").
func numericExpected(expected string) (float64, bool) {
	s := strings.TrimSpace(expected)
	loc := numberPattern.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0, false
	}
	rest := strings.TrimSpace(s[loc[1]:])
	// Anything after the number must be a bare unit, not more numbers
	// or prose ("12.5 billion SAR" scales, "1400 MW available" does not).
	if rest != "" && (numberPattern.MatchString(rest) || strings.Count(rest, " ") > 1) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s[loc[0]:loc[1]], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch {
	case strings.HasPrefix(rest, "billion"):
		v *= 1e9
	case strings.HasPrefix(rest, "million"):
		v *= 1e6
	}
	return v, true
}

// containsNumber scans every number in the answer for one within the
// relative tolerance of want. Thousands separators are stripped and
// billion/million suffixes scaled before comparing.
func containsNumber(answer string, want, tolerance float64) bool {
	locs := numberPattern.FindAllStringIndex(answer, -1)
	for _, loc := range locs {
		v, err := strconv.ParseFloat(strings.ReplaceAll(answer[loc[0]:loc[1]], ",", ""), 64)
		if err != nil {
			continue
		}
		rest := strings.TrimSpace(answer[loc[1]:])
		scaled := v
		switch {
		case strings.HasPrefix(rest, "billion"):
			scaled = v * 1e9
		case strings.HasPrefix(rest, "million"):
			scaled = v * 1e6
		}
		if withinTolerance(scaled, want, tolerance) || withinTolerance(v, want, tolerance) {
			return true
		}
	}
	return false
}

func withinTolerance(got, want, tolerance float64) bool {
	if want == 0 {
		return got == 0
	}
	return math.Abs(got-want)/math.Abs(want) <= tolerance
}

var tokenSplitter = regexp.MustCompile(`[\s,;:()\[\]]+`)

// containsKeyTokens requires every token of the expected value longer than
// two characters to appear in the answer.
func containsKeyTokens(answer, expected string) bool {
	tokens := tokenSplitter.Split(strings.ToLower(expected), -1)
	matched := 0
	for _, tok := range tokens {
		tok = strings.Trim(tok, ".")
		if len(tok) <= 2 {
			continue
		}
		if !strings.Contains(answer, tok) {
			return false
		}
		matched++
	}
	if matched == 0 {
		// Short expected values ("no", "21%") fall back to whole-value
		// containment.
		return strings.Contains(answer, strings.ToLower(strings.TrimSpace(expected)))
	}
	return true
}
