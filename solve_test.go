package main

import (
	"reflect"
	"testing"
)

func TestHasSameNumberPattern(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"5 * 5", true},
		{"5*5", true},
		{"12 + 12", true},
		{"5 + 6", false},
		{"12 + 34", false},
		{"no digits", false},
		{"12 + 2 and 2 + 2", true},
		// The search can start mid-run: "12-2" matches as "2-2".
		{"12-2", true},
		{"05 + 5", true},
		// The right side only has to start with the left side's digits.
		{"2 + 23", true},
		{"7 * 75", true},
		{"75 * 7", false},
	}
	for _, tt := range tests {
		if got := hasSameNumberPattern(tt.raw); got != tt.want {
			t.Errorf("hasSameNumberPattern(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestSelectOperands(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		nums     []float64
		explicit explicitOp
		want     []float64
	}{
		{
			name: "dedup by default",
			raw:  "ten newtons and ten newtons and five",
			nums: []float64{10, 10, 5},
			want: []float64{10, 5},
		},
		{
			name:     "same-number expression keeps duplicates",
			raw:      "5 * 5",
			nums:     []float64{5, 5},
			explicit: opMultiply,
			want:     []float64{5, 5},
		},
		{
			name:     "repeated values with explicit op keep duplicates",
			raw:      "seven times seven",
			nums:     []float64{7, 7},
			explicit: opMultiply,
			want:     []float64{7, 7},
		},
		{
			name: "repeated values without explicit op are deduped",
			raw:  "seven and seven",
			nums: []float64{7, 7},
			want: []float64{7},
		},
		{
			name: "order preserved",
			raw:  "",
			nums: []float64{32, 10, 32},
			want: []float64{32, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := selectOperands(tt.raw, tt.nums, tt.explicit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selectOperands = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveOperationTiers(t *testing.T) {
	tests := []struct {
		name     string
		cleaned  string
		explicit explicitOp
		wantOp   arithOp
		wantTier decisionTier
	}{
		{
			name:     "explicit beats keywords",
			cleaned:  "gains plus total each",
			explicit: opSubtract,
			wantOp:   arithSubtract,
			wantTier: tierExplicit,
		},
		{
			name:     "rate and duration",
			cleaned:  "a crab moves at four meters per second for five seconds",
			wantOp:   arithMultiply,
			wantTier: tierRate,
		},
		{
			name:     "subtract keyword suppresses rate tier",
			cleaned:  "slows by four meters per second for five seconds",
			wantOp:   arithSubtract,
			wantTier: tierKeyword,
		},
		{
			name:     "zero duration falls through to keywords",
			cleaned:  "gains four meters per second for zero seconds",
			wantOp:   arithAdd,
			wantTier: tierKeyword,
		},
		{
			name:     "each means multiply",
			cleaned:  "ten lobsters each carying five newtons",
			wantOp:   arithMultiply,
			wantTier: tierKeyword,
		},
		{
			name:     "each outranks additive keywords",
			cleaned:  "each lobster gains five",
			wantOp:   arithMultiply,
			wantTier: tierKeyword,
		},
		{
			name:     "divide keyword",
			cleaned:  "eight divided by zero",
			wantOp:   arithDivide,
			wantTier: tierKeyword,
		},
		{
			name:     "aggregate keyword sums all",
			cleaned:  "the total of two and three and four",
			wantOp:   arithSumAll,
			wantTier: tierKeyword,
		},
		{
			name:     "no match falls back to sum",
			cleaned:  "two lobsters three crabs",
			wantOp:   arithSumAll,
			wantTier: tierFallback,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := resolveOperation(tt.cleaned, tt.explicit)
			if d.op != tt.wantOp || d.tier != tt.wantTier {
				t.Errorf("resolveOperation(%q) = {op:%v tier:%s}, want {op:%v tier:%s}",
					tt.cleaned, d.op, d.tier, tt.wantOp, tt.wantTier)
			}
		})
	}
}

func TestRateDecisionDuration(t *testing.T) {
	d, ok := rateDecision("moves at four meters per second for five seconds")
	if !ok {
		t.Fatal("expected rate decision")
	}
	if d.duration != 5 {
		t.Fatalf("duration = %v, want 5", d.duration)
	}

	d, ok = rateDecision("moves at four meters per second for 12 secs")
	if !ok || d.duration != 12 {
		t.Fatalf("digit duration = %v ok=%v, want 12 true", d.duration, ok)
	}

	if _, ok := rateDecision("moves at four meters per second all day"); ok {
		t.Fatal("expected no rate decision without a duration phrase")
	}
}

func TestSolveChallengeScenarios(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"explicit add", "3 + 4", "7.00"},
		{"explicit subtract", "10 - 4", "6.00"},
		{"explicit multiply", "6 * 7", "42.00"},
		{"explicit divide", "8 / 2", "4.00"},
		{"explicit divide by zero", "8 / 0", "0.00"},
		{"same number multiply", "5 * 5", "25.00"},
		{
			"additive keyword with compound number",
			"A lobster gains thirty two newtons and ten newtons",
			"42.00",
		},
		{
			"each keyword multiplies",
			"Ten lobsters, each carrying five newtons",
			"50.00",
		},
		{
			"rate times duration",
			"A crab moves at four meters per second for five seconds",
			"20.00",
		},
		{
			"divide by zero yields zero",
			"Eight divided by zero",
			"0.00",
		},
		{
			"garbled challenge",
			"A] LoBsTeR GaInS| ThIrTy tWo NeWtOnS aNd TeN NeWtOnS",
			"42.00",
		},
		{
			"subtractive keyword",
			"A lobster with twenty newtons loses five of them",
			"15.00",
		},
		{
			"aggregate sums everything",
			"The total of two and three and four newtons",
			"9.00",
		},
		{
			"fallback sums everything",
			"Two lobsters and three crabs and four shrimp",
			"9.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SolveChallenge(tt.raw)
			if !ok {
				t.Fatalf("SolveChallenge(%q) unsolvable, want %s", tt.raw, tt.want)
			}
			if got != tt.want {
				t.Errorf("SolveChallenge(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSolveChallengeUnsolvable(t *testing.T) {
	tests := []string{
		"Just some noise with no numbers",
		"only a single reading: five newtons",
		"",
	}
	for _, raw := range tests {
		if got, ok := SolveChallenge(raw); ok {
			t.Errorf("SolveChallenge(%q) = %s, want unsolvable", raw, got)
		}
	}
}
