package main

import (
	"regexp"
	"strconv"
	"strings"
)

var digitLiteralRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

// extractNumbers pulls every numeric value out of a challenge. Word numbers
// come from the cleaned text; digit literals come from the raw text, since
// digits and decimal points survive the noise injection untouched.
//
// Word-derived values are returned before digit-derived values regardless of
// where they sit in the text. Downstream operand selection relies on this
// ordering, so it must not be changed to true text order.
func extractNumbers(raw, cleaned string) []float64 {
	var found []float64

	words := strings.Fields(cleaned)
	for i := 0; i < len(words); i++ {
		val, ok := numberWords[words[i]]
		if !ok {
			continue
		}
		// Merge two-part compounds: "thirty two" -> 32, "hundred five"
		// -> 105. A single lookahead only, no chained merges.
		if i+1 < len(words) {
			if next, ok := numberWords[words[i+1]]; ok {
				if (val >= 20 && next < 10) || (val >= 100 && next < 100) {
					val += next
					i++
				}
			}
		}
		found = append(found, float64(val))
	}

	for _, m := range digitLiteralRe.FindAllString(raw, -1) {
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		found = append(found, n)
	}

	return found
}
