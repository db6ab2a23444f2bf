// Package match maps a free-text oracle answer back onto the page: either
// onto one of the detected options or onto any element currently showing
// similar text.
package match

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/hyperifyio/quizlens/internal/textnorm"
)

// Default acceptance thresholds. Scores must be strictly greater.
const (
	DefaultOptionThreshold = 0.7
	DefaultScanThreshold   = 0.5
)

// Closed-set scores.
const (
	ScoreExact          = 1.0
	ScoreOptionContains = 0.9
	ScoreAnswerContains = 0.8
)

// Option is the outcome of closed-set resolution.
type Option struct {
	Index int
	Text  string
	Score float64
}

// ResolveOption finds the option the answer refers to. Comparison is on
// normalized text: an exact match scores 1.0, an option containing the answer
// 0.9 and an answer containing the option 0.8. The first option with the
// highest score wins and is accepted only when the score exceeds threshold;
// a threshold <= 0 means DefaultOptionThreshold.
func ResolveOption(answer string, options []string, threshold float64) (Option, bool) {
	if threshold <= 0 {
		threshold = DefaultOptionThreshold
	}
	a := textnorm.Normalize(answer)
	best := Option{Index: -1}
	for i, opt := range options {
		if s := optionScore(a, textnorm.Normalize(opt)); s > best.Score {
			best = Option{Index: i, Text: opt, Score: s}
		}
	}
	if best.Index < 0 || best.Score <= threshold {
		return best, false
	}
	return best, true
}

func optionScore(answer, option string) float64 {
	switch {
	case answer == "" || option == "":
		return 0
	case answer == option:
		return ScoreExact
	case strings.Contains(option, answer):
		return ScoreOptionContains
	case strings.Contains(answer, option):
		return ScoreAnswerContains
	}
	return 0
}

// fold returns the case-folded runes of s. Casers carry state, so each call
// gets its own.
func fold(s string) []rune { return []rune(cases.Fold().String(s)) }

// Similarity is (maxLen - EditDistance(a, b)) / maxLen on case-folded text,
// with lengths in runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := fold(a), fold(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return float64(longest-distance(ra, rb)) / float64(longest)
}

// EditDistance is the Levenshtein distance between the case-folded forms of
// a and b.
func EditDistance(a, b string) int {
	return distance(fold(a), fold(b))
}

// distance uses a single rolling row.
func distance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			above := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}
	return row[len(b)]
}
