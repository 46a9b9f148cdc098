package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// decisionTier records which stage of the priority cascade picked the
// operation. Used in logs and tests only; it never leaves the process.
type decisionTier int

const (
	tierExplicit decisionTier = iota + 1
	tierRate
	tierKeyword
	tierFallback
)

func (t decisionTier) String() string {
	switch t {
	case tierExplicit:
		return "explicit"
	case tierRate:
		return "rate"
	case tierKeyword:
		return "keyword"
	case tierFallback:
		return "fallback"
	}
	return "unknown"
}

type arithOp int

const (
	arithAdd arithOp = iota
	arithSubtract
	arithMultiply
	arithDivide
	arithSumAll
)

// operationDecision is the resolved operation plus the tier that produced
// it. For the rate tier, duration holds the multiplier parsed from the
// "for N seconds" phrase.
type operationDecision struct {
	op       arithOp
	tier     decisionTier
	duration float64
}

// Keyword categories, checked in this order. First category with a
// substring match in the cleaned text wins.
var (
	rateWords = []string{
		"per second", "per sec", "per minute", "per min", "per hour",
		"cm per", "meters per",
	}
	addWords = []string{
		"plus", "added", "adds", "more than", "additional", "gained",
		"gains", "gain", "accelerates", "faster", "increases", "speeds",
		"more", "earns", "collects", "gathers", "receives", "gets",
	}
	subtractWords = []string{
		"slow", "slows", "reduce", "reduces", "resistance", "decelerate",
		"loses", "drops", "decreases", "minus", "subtract", "less",
		"gave away", "spent", "remaining", "left over",
	}
	multiplyWords = []string{"times", "multiply", "multiplied", "multiplies", "multi"}
	divideWords   = []string{"divided", "divide", "split", "shared equally"}
	sumWords      = []string{"total", "combined", "altogether", "sum", "how many"}
)

var sameNumberOpRe = regexp.MustCompile(`^\s*[+\-*/×]\s*`)

var durationRe *regexp.Regexp

func init() {
	var alts []string
	for _, w := range numberWordOrder {
		if numberWords[w] <= 100 {
			alts = append(alts, w)
		}
	}
	durationRe = regexp.MustCompile(
		`\bfor\s+(\d+|` + strings.Join(alts, "|") + `)\s+(seconds?|minutes?|hours?|secs?|mins?)\b`)
}

// hasSameNumberPattern reports whether the raw text contains an arithmetic
// expression whose right side starts with the same digit sequence as its
// left side, e.g. "5 * 5". The search may begin mid-run, so "12-2" matches
// as "2-2". This is a backtracking backreference search, which RE2 cannot
// express directly: the left operand is every suffix of a digit run, and
// the right operand only has to begin with those digits.
func hasSameNumberPattern(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			continue
		}
		run := i
		for run < len(raw) && raw[run] >= '0' && raw[run] <= '9' {
			run++
		}
		if op := sameNumberOpRe.FindString(raw[run:]); op != "" {
			tail := raw[run+len(op):]
			for a := i; a < run; a++ {
				if strings.HasPrefix(tail, raw[a:run]) {
					return true
				}
			}
		}
		i = run - 1
	}
	return false
}

// selectOperands turns extracted values into the operands the resolver will
// use. Duplicated values are normally collapsed, except when the challenge
// genuinely asks about the same number twice: an identical-digits expression
// in the raw text, or repeated values alongside an explicit operator.
func selectOperands(raw string, nums []float64, explicit explicitOp) []float64 {
	sameNumber := hasSameNumberPattern(raw)
	if !sameNumber && len(nums) >= 2 && explicit != opNone {
		counts := make(map[float64]int, len(nums))
		for _, n := range nums {
			counts[n]++
			if counts[n] >= 2 {
				sameNumber = true
				break
			}
		}
	}

	if sameNumber {
		if len(nums) >= 2 {
			return nums[:2]
		}
		return nums
	}

	seen := make(map[float64]bool, len(nums))
	var unique []float64
	for _, n := range nums {
		if !seen[n] {
			seen[n] = true
			unique = append(unique, n)
		}
	}
	return unique
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// resolveOperation picks the arithmetic operation for a challenge via the
// priority cascade: explicit symbol, then rate x duration, then keyword
// category, then the sum-everything fallback.
func resolveOperation(cleaned string, explicit explicitOp) operationDecision {
	switch explicit {
	case opAdd:
		return operationDecision{op: arithAdd, tier: tierExplicit}
	case opSubtract:
		return operationDecision{op: arithSubtract, tier: tierExplicit}
	case opMultiply:
		return operationDecision{op: arithMultiply, tier: tierExplicit}
	case opDivide:
		return operationDecision{op: arithDivide, tier: tierExplicit}
	}

	if d, ok := rateDecision(cleaned); ok {
		return d
	}

	switch {
	case strings.Contains(cleaned, "each"):
		return operationDecision{op: arithMultiply, tier: tierKeyword}
	case containsAny(cleaned, addWords):
		return operationDecision{op: arithAdd, tier: tierKeyword}
	case containsAny(cleaned, subtractWords):
		return operationDecision{op: arithSubtract, tier: tierKeyword}
	case containsAny(cleaned, multiplyWords):
		return operationDecision{op: arithMultiply, tier: tierKeyword}
	case containsAny(cleaned, divideWords):
		return operationDecision{op: arithDivide, tier: tierKeyword}
	case containsAny(cleaned, sumWords):
		return operationDecision{op: arithSumAll, tier: tierKeyword}
	}

	return operationDecision{op: arithSumAll, tier: tierFallback}
}

// rateDecision detects the "N units per second for M seconds" shape. A
// duration that cannot be resolved to a nonzero value falls through to the
// keyword tier.
func rateDecision(cleaned string) (operationDecision, bool) {
	if !containsAny(cleaned, rateWords) || containsAny(cleaned, subtractWords) {
		return operationDecision{}, false
	}
	m := durationRe.FindStringSubmatch(cleaned)
	if m == nil {
		return operationDecision{}, false
	}
	duration := parseDuration(m[1])
	if duration == 0 {
		return operationDecision{}, false
	}
	return operationDecision{op: arithMultiply, tier: tierRate, duration: duration}, true
}

func parseDuration(s string) float64 {
	if s == "" {
		return 0
	}
	allDigits := true
	for _, r := range s {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return v
	}
	return float64(numberWords[s])
}

// apply computes the numeric result over the selected operands. Division by
// zero is defined as 0, never an error.
func (d operationDecision) apply(operands []float64) float64 {
	if d.tier == tierRate {
		return operands[0] * d.duration
	}
	a, b := operands[0], operands[1]
	switch d.op {
	case arithAdd:
		return a + b
	case arithSubtract:
		return a - b
	case arithMultiply:
		return a * b
	case arithDivide:
		if b == 0 {
			return 0
		}
		return a / b
	default:
		var sum float64
		for _, n := range operands {
			sum += n
		}
		return sum
	}
}

// SolveChallenge solves a garbled Moltbook verification challenge. It
// returns the answer formatted with two decimals, or ok=false when fewer
// than two numeric operands can be found. It never fails for malformed
// input; every stage degrades to the next.
func SolveChallenge(raw string) (string, bool) {
	cleaned, explicit := degarble(raw)
	nums := extractNumbers(raw, cleaned)
	operands := selectOperands(raw, nums, explicit)
	if len(operands) < 2 {
		return "", false
	}

	decision := resolveOperation(cleaned, explicit)
	result := decision.apply(operands)
	return fmt.Sprintf("%.2f", result), true
}
