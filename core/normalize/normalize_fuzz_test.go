package normalize

import (
	"math"
	"testing"
	"time"
)

// FuzzParseDate fuzzes ParseDate with random inputs.
func FuzzParseDate(f *testing.F) {
	seeds := []string{
		"1997-11-01",
		"1997-11",
		" 2001-01-15 ",
		"1997-11-01T00:00:00Z",
		"1997/11/01",
		"",
		"13-13-13",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		p, ok := ParseDate(input)
		if ok && (p.Month < time.January || p.Month > time.December) {
			t.Errorf("ParseDate(%q) returned month %d", input, p.Month)
		}
	})
}

// FuzzComposePeriod fuzzes ComposePeriod with random year and month cells.
func FuzzComposePeriod(f *testing.F) {
	f.Add("1950", "1")
	f.Add("1950.0", "12.0")
	f.Add("0", "13")
	f.Add("abc", "")
	f.Add("1e3", "1e0")

	f.Fuzz(func(t *testing.T, year, month string) {
		p, ok := ComposePeriod(year, month)
		if !ok {
			return
		}
		if p.Year < 1 || p.Year > 9999 || p.Month < time.January || p.Month > time.December {
			t.Errorf("ComposePeriod(%q, %q) returned out-of-range period %v", year, month, p)
		}
	})
}

// FuzzParseValue checks that accepted values are always finite.
func FuzzParseValue(f *testing.F) {
	for _, seed := range []string{"0.5", "-1.25", "NaN", "Inf", "1e309", " 2 ", ""} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, ok := ParseValue(input)
		if ok && (math.IsNaN(v) || math.IsInf(v, 0)) {
			t.Errorf("ParseValue(%q) accepted non-finite %v", input, v)
		}
	})
}
