package classify

import (
	"fmt"
	"sort"
	"strings"
)

// word wraps alternatives in Unicode-aware whole-word boundaries. RE2's \b
// only knows ASCII word characters, which breaks on words like "który".
func word(alts ...string) string {
	return `(?i)(^|[^\p{L}\p{N}_])(` + strings.Join(alts, "|") + `)($|[^\p{L}\p{N}_])`
}

var markerQuestion = MustRule("marker-question", `^(\d+[.)]|\w+[.)]|\w+:|\*|-|•)\s*(.+\?)`)

var endsWithQuestionMark = MustRule("trailing-question-mark", `(.+\?)$`)

// PolishQuestions are the interrogative heuristics for Polish pages.
var PolishQuestions = RuleSet{
	markerQuestion,
	MustRule("pytanie-marker", `(?i)pytanie\s*\d*[:.]?\s*(.+\?)`),
	endsWithQuestionMark,
	MustRule("ktore-z-ponizszych", `(?i)które?\s+z?\s+poniższych`),
	MustRule("co-to-jest", `(?i)co\s+(to\s+)?jest`),
	MustRule("jak-sie-nazywa", `(?i)jak\s+(się\s+)?nazywa`),
	MustRule("wybierz-prawidlowa", `(?i)wybierz\s+(prawidłową|właściwą)`),
	MustRule("wskaz-prawidlowa", `(?i)wskaż\s+(prawidłową|poprawną)`),
	MustRule("zaznacz-prawidlowa", `(?i)zaznacz\s+(prawidłową|poprawną)`),
	MustRule("pl-interrogative", word("który", "która", "które", "co", "jak", "gdzie", "kiedy", "dlaczego", "czemu")),
}

// EnglishQuestions are the interrogative heuristics for English pages.
var EnglishQuestions = RuleSet{
	markerQuestion,
	MustRule("question-marker", `(?i)question\s*\d*[:.]?\s*(.+\?)`),
	endsWithQuestionMark,
	MustRule("which-of-the-following", `(?i)which\s+of\s+the\s+following`),
	MustRule("what-is", `(?i)what\s+is`),
	MustRule("how-is-called", `(?i)how\s+is\s+.+\s+called`),
	MustRule("choose-the-correct", `(?i)(choose|select|mark)\s+the\s+(correct|right)`),
	MustRule("en-interrogative", word("who", "what", "which", "where", "when", "why")),
}

// PolishAnswers recognise option markers on Polish pages.
var PolishAnswers = RuleSet{
	MustRule("letter-marker", `(?i)^[a-z][).]\s+`),
	MustRule("digit-marker", `^[0-9][).]\s+`),
	MustRule("bullet", `^[*\-•]\s+`),
	MustRule("tak-nie", `(?i)^(tak|nie)$`),
	MustRule("roman-marker", `(?i)^[ivxlcdm]+[).]\s+`),
}

// EnglishAnswers recognise option markers on English pages.
var EnglishAnswers = RuleSet{
	MustRule("letter-marker", `(?i)^[a-z][).]\s+`),
	MustRule("digit-marker", `^[0-9][).]\s+`),
	MustRule("bullet", `^[*\-•]\s+`),
	MustRule("yes-no", `(?i)^(yes|no|true|false)$`),
	MustRule("roman-marker", `(?i)^[ivxlcdm]+[).]\s+`),
}

var builtins = map[string]Classifier{
	"pl": {Question: PolishQuestions, Answer: PolishAnswers},
	"en": {Question: EnglishQuestions, Answer: EnglishAnswers},
	"default": {
		Question: dedupe(Concat(PolishQuestions, EnglishQuestions)),
		Answer:   dedupe(Concat(PolishAnswers, EnglishAnswers)),
	},
}

// Default covers Polish and English pages.
func Default() Classifier { return builtins["default"] }

// Builtin returns a named built-in classifier: pl, en or default.
func Builtin(name string) (Classifier, error) {
	c, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Classifier{}, fmt.Errorf("unknown rule set %q (known: %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return c, nil
}

// BuiltinNames lists the built-in rule set names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func dedupe(s RuleSet) RuleSet {
	seen := make(map[string]bool, len(s))
	out := make(RuleSet, 0, len(s))
	for _, r := range s {
		if seen[r.Name] {
			continue
		}
		seen[r.Name] = true
		out = append(out, r)
	}
	return out
}
