// Package textmatch provides the fuzzy comparators used to reconcile names
// and addresses across identity documents. Matching is deliberately
// conservative: normalization plus exact-token overlap, no edit distances.
package textmatch

import (
	"strings"
	"unicode"
)

const (
	nameWordThreshold    = 0.70
	addressWordThreshold = 0.60

	// Address tokens this short (house numbers, "rd", "st") are too noisy
	// to count toward the overlap ratio.
	addressMinTokenLen = 3
)

// Names reports whether two personal names refer to the same person.
// Both names are normalized (letters only, lowercased, whitespace collapsed);
// they match when equal, when one contains the other, or when at least 70%
// of the longer name's words appear verbatim among the shorter name's words.
func Names(a, b string) bool {
	na := normalize(a, false)
	nb := normalize(b, false)
	return fuzzyEqual(na, nb, nameWordThreshold, 1)
}

// Addresses reports whether two postal addresses plausibly describe the same
// place. Digits are retained during normalization, the overlap threshold
// drops to 60%, and only tokens longer than two characters are counted.
func Addresses(a, b string) bool {
	na := normalize(a, true)
	nb := normalize(b, true)
	return fuzzyEqual(na, nb, addressWordThreshold, addressMinTokenLen)
}

func fuzzyEqual(a, b string, threshold float64, minTokenLen int) bool {
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	wordsA := keepTokens(strings.Fields(a), minTokenLen)
	wordsB := keepTokens(strings.Fields(b), minTokenLen)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	longer, shorter := wordsA, wordsB
	if len(wordsB) > len(wordsA) {
		longer, shorter = wordsB, wordsA
	}

	shorterSet := make(map[string]struct{}, len(shorter))
	for _, w := range shorter {
		shorterSet[w] = struct{}{}
	}

	matched := 0
	for _, w := range longer {
		if _, ok := shorterSet[w]; ok {
			matched++
		}
	}

	return float64(matched) >= threshold*float64(len(longer))
}

func keepTokens(tokens []string, minLen int) []string {
	if minLen <= 1 {
		return tokens
	}
	kept := tokens[:0:0]
	for _, tok := range tokens {
		if len(tok) >= minLen {
			kept = append(kept, tok)
		}
	}
	return kept
}

// normalize lowercases s and strips every rune that is not a letter (or, when
// keepDigits is set, a digit), collapsing the result to single spaces.
func normalize(s string, keepDigits bool) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || (keepDigits && unicode.IsDigit(r)):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}
