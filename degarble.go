package main

import (
	"regexp"
	"strings"
)

// explicitOp is an arithmetic operation spelled out as a symbol in the raw
// challenge text. It is detected before any cleaning and takes precedence
// over every inferred operation.
type explicitOp int

const (
	opNone explicitOp = iota
	opAdd
	opSubtract
	opMultiply
	opDivide
)

func (op explicitOp) String() string {
	switch op {
	case opAdd:
		return "add"
	case opSubtract:
		return "subtract"
	case opMultiply:
		return "multiply"
	case opDivide:
		return "divide"
	}
	return "none"
}

// wordCorrections maps garbled spellings produced by Moltbook's noise
// injection back to the intended word. Exact-match only.
var wordCorrections = map[string]string{
	"thre": "three", "fourten": "fourteen", "fiften": "fifteen",
	"sixten": "sixteen", "seventen": "seventeen", "eighten": "eighteen",
	"nineten": "nineteen", "twety": "twenty", "thrty": "thirty",
	"fty": "fifty", "sxty": "sixty", "sevnty": "seventy",
	"eghty": "eighty", "nnety": "ninety",
	"hundrd": "hundred", "thousnd": "thousand",
	"lobstr": "lobster", "twnty": "twenty", "thrte": "thirty",
	"fife": "five", "fve": "five", "hre": "three",
	"hirty": "thirty", "irty": "thirty", "hirteen": "thirteen",
	"ourteen": "fourteen", "ifteen": "fifteen", "ixteen": "sixteen",
	"ighteen": "eighteen", "ineteen": "nineteen",
	"wenty": "twenty", "enty": "twenty",
	"orty": "forty", "ighty": "eighty", "inety": "ninety",
	"sped": "speed", "gans": "gains", "gan": "gain",
}

var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"thirty": 30, "forty": 40, "fifty": 50, "sixty": 60, "seventy": 70,
	"eighty": 80, "ninety": 90, "hundred": 100, "thousand": 1000,
}

// numberWordOrder keeps a stable ordering of numberWords for building the
// duration regex alternation.
var numberWordOrder = []string{
	"zero", "one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
	"eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen", "twenty",
	"thirty", "forty", "fifty", "sixty", "seventy",
	"eighty", "ninety", "hundred", "thousand",
}

// rejoinTargets is the vocabulary fragment rejoining may reassemble: every
// number word plus the domain nouns Moltbook challenges are written with.
var rejoinTargets = map[string]bool{}

func init() {
	for w := range numberWords {
		rejoinTargets[w] = true
	}
	for _, w := range []string{
		"total", "force", "distance", "lobster", "newtons", "meters", "seconds",
		"minutes", "centimeters", "kilometers", "increases", "decreases",
		"accelerates", "decelerates", "molting", "antenna", "exerts",
	} {
		rejoinTargets[w] = true
	}
}

var (
	explicitAddRe      = regexp.MustCompile(`\d\s*\+\s*\d`)
	explicitMulDigitRe = regexp.MustCompile(`\d\s*[*×]\s*\d`)
	explicitMulBareRe  = regexp.MustCompile(`[*×]`)
	explicitDivRe      = regexp.MustCompile(`\d\s*/\s*\d`)
	explicitSubRe      = regexp.MustCompile(`\d\s+-\s+\d`)
	nonAlnumRe         = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// detectExplicitOp finds a symbolic operator in the raw text. Checked in
// fixed priority; a bare * or × counts as multiply even without digits
// around it, which matches the challenge format in the wild.
func detectExplicitOp(raw string) explicitOp {
	switch {
	case explicitAddRe.MatchString(raw):
		return opAdd
	case explicitMulDigitRe.MatchString(raw) || explicitMulBareRe.MatchString(raw):
		return opMultiply
	case explicitDivRe.MatchString(raw):
		return opDivide
	case explicitSubRe.MatchString(raw):
		return opSubtract
	}
	return opNone
}

// collapseRuns rewrites every run of the same rune with length >= min to a
// single instance.
func collapseRuns(s string, min int) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= min {
			b.WriteRune(runes[i])
		} else {
			for k := i; k < j; k++ {
				b.WriteRune(runes[k])
			}
		}
		i = j
	}
	return b.String()
}

// degarble cleans a garbled challenge into readable lowercase words and
// reports any explicit operator found in the raw text.
//
// Moltbook inserts random punctuation, case changes, and letter repetition
// into challenge text. Cleaning strips punctuation, lowercases, collapses
// heavy (3+) then light (2+) letter repetition, fixes known garbled
// spellings, and rejoins words that noise split across spaces
// ("thi rty" -> "thirty").
func degarble(raw string) (string, explicitOp) {
	op := detectExplicitOp(raw)

	clean := strings.ToLower(nonAlnumRe.ReplaceAllString(raw, ""))
	clean = collapseRuns(clean, 3)
	clean = collapseRuns(clean, 2)

	words := strings.Fields(clean)
	for i, w := range words {
		if fixed, ok := wordCorrections[w]; ok {
			words[i] = fixed
		}
	}

	return strings.Join(rejoinFragments(words), " "), op
}

// rejoinFragments reassembles tokens that noise split apart. At each
// position the longest span (5 down to 2 tokens) whose concatenation, or
// corrected concatenation, is a known target word wins; otherwise the
// single token is emitted unchanged.
func rejoinFragments(words []string) []string {
	var out []string
	i := 0
	for i < len(words) {
		matched := false
		for span := 5; span >= 2; span-- {
			if i+span > len(words) {
				continue
			}
			combined := strings.Join(words[i:i+span], "")
			if rejoinTargets[combined] {
				out = append(out, combined)
				i += span
				matched = true
				break
			}
			if corrected, ok := wordCorrections[combined]; ok && rejoinTargets[corrected] {
				out = append(out, corrected)
				i += span
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, words[i])
			i++
		}
	}
	return out
}
