// Package classify decides whether a piece of page text reads like a quiz
// question or like an answer option. The heuristics are ordered rule sets so
// that language support is a matter of configuration.
package classify

import (
	"fmt"
	"regexp"
)

// Rule is a single named lexical heuristic.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// NewRule compiles pattern into a Rule.
func NewRule(name, pattern string) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", name, err)
	}
	return Rule{Name: name, Pattern: re}, nil
}

// MustRule is NewRule for built-in patterns known to compile.
func MustRule(name, pattern string) Rule {
	r, err := NewRule(name, pattern)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the rule matches text.
func (r Rule) Matches(text string) bool {
	return r.Pattern != nil && r.Pattern.MatchString(text)
}

// RuleSet is an ordered list of rules. A text matches the set when any rule
// matches it; evaluation stops at the first hit.
type RuleSet []Rule

// Match returns the first rule matching text.
func (s RuleSet) Match(text string) (Rule, bool) {
	for _, r := range s {
		if r.Matches(text) {
			return r, true
		}
	}
	return Rule{}, false
}

// Matches reports whether any rule matches text.
func (s RuleSet) Matches(text string) bool {
	_, ok := s.Match(text)
	return ok
}

// Concat joins rule sets, keeping their order.
func Concat(sets ...RuleSet) RuleSet {
	var out RuleSet
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

// Classifier holds the question and answer rule sets. Both predicates work
// on raw extracted text; callers must not normalize it first.
type Classifier struct {
	Question RuleSet
	Answer   RuleSet
}

// LooksLikeQuestion reports whether text reads like a quiz question.
func (c Classifier) LooksLikeQuestion(text string) bool { return c.Question.Matches(text) }

// LooksLikeAnswer reports whether text reads like an answer option.
func (c Classifier) LooksLikeAnswer(text string) bool { return c.Answer.Matches(text) }
