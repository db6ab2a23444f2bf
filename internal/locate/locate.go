// Package locate finds a quiz question and its answer options in an
// unstructured page.
package locate

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizlens/internal/classify"
	"github.com/hyperifyio/quizlens/internal/dom"
	"github.com/hyperifyio/quizlens/internal/extract"
	"github.com/hyperifyio/quizlens/internal/textnorm"
)

// Limits bound the text lengths and counts used during detection. Lengths
// are in characters.
type Limits struct {
	MinQuestion int // pass 1 skips shorter texts
	MaxQuestion int // exclusive upper bound for questions
	FallbackMin int // pass 2 needs strictly more than this
	MaxAnswer   int // exclusive upper bound for each answer
	MaxAnswers  int // cap after deduplication
	MinAnswers  int // a strategy runs only while fewer were found
}

// DefaultLimits are the values the heuristics were tuned with.
var DefaultLimits = Limits{
	MinQuestion: 10,
	MaxQuestion: 500,
	FallbackMin: 15,
	MaxAnswer:   300,
	MaxAnswers:  10,
	MinAnswers:  2,
}

// Strategy names the heuristic that produced the answers.
type Strategy string

const (
	StrategyNone    Strategy = ""
	StrategyInput   Strategy = "input"
	StrategyList    Strategy = "list"
	StrategyPattern Strategy = "pattern"
)

// Candidate is a piece of text paired with the element it came from. The
// Locator is the durable reference; Element is only valid for the document
// the candidate was detected in.
type Candidate struct {
	Text    extract.PageText
	Locator dom.Locator
	Element *dom.Element
}

func newCandidate(el *dom.Element, text extract.PageText) Candidate {
	loc, _ := el.Locator()
	return Candidate{Text: text, Locator: loc, Element: el}
}

// Result is the outcome of one detection pass. It goes stale as soon as the
// page changes.
type Result struct {
	Question *Candidate
	Answers  []Candidate
	Strategy Strategy
}

// Complete reports whether a question and enough answers to ask about were
// found.
func (r Result) Complete() bool {
	return r.Question != nil && len(r.Answers) >= DefaultLimits.MinAnswers
}

// AnswerTexts returns the raw answer strings in order.
func (r Result) AnswerTexts() []string {
	out := make([]string, len(r.Answers))
	for i, a := range r.Answers {
		out[i] = a.Text.Raw
	}
	return out
}

// QuestionText returns the raw question string, or "".
func (r Result) QuestionText() string {
	if r.Question == nil {
		return ""
	}
	return r.Question.Text.Raw
}

// Detector runs the question and answer heuristics. The zero value uses the
// default classifier, limits and text extractor.
type Detector struct {
	Classifier *classify.Classifier
	Limits     *Limits
	Extractor  extract.Extractor
}

func (d Detector) classifier() classify.Classifier {
	if d.Classifier != nil {
		return *d.Classifier
	}
	return classify.Default()
}

func (d Detector) limits() Limits {
	if d.Limits != nil {
		return *d.Limits
	}
	return DefaultLimits
}

func (d Detector) text(el *dom.Element) extract.PageText {
	if d.Extractor != nil {
		return d.Extractor.Extract(el)
	}
	return extract.Of(el)
}

// Detect scans doc for one question and up to Limits.MaxAnswers answers near
// it. When no question is found the answers are never searched.
func (d Detector) Detect(doc *dom.Document) Result {
	if doc == nil || doc.Body() == nil {
		return Result{}
	}
	visible := visibleElements(doc)
	q := d.findQuestion(visible)
	if q == nil {
		log.Debug().Int("elements", len(visible)).Msg("no question found")
		return Result{}
	}
	scope := searchScope(q.Element)
	answers, strategy := d.findAnswers(scope)
	answers = d.dedupe(answers)
	log.Debug().
		Str("question", q.Locator.String()).
		Str("scope", scope.Tag()).
		Str("strategy", string(strategy)).
		Int("answers", len(answers)).
		Msg("detection finished")
	return Result{Question: q, Answers: answers, Strategy: strategy}
}

var skipTags = dom.Tag("script", "style", "noscript")

func visibleElements(doc *dom.Document) []*dom.Element {
	var out []*dom.Element
	for _, el := range doc.Elements() {
		if skipTags(el) || !el.Visible() {
			continue
		}
		out = append(out, el)
	}
	return out
}

func runes(s string) int { return utf8.RuneCountInString(s) }

func (d Detector) findQuestion(visible []*dom.Element) *Candidate {
	lim := d.limits()
	cls := d.classifier()
	texts := make([]extract.PageText, len(visible))
	for i, el := range visible {
		texts[i] = d.text(el)
	}
	for i, el := range visible {
		t := texts[i]
		n := runes(t.Raw)
		if t.Empty() || n < lim.MinQuestion {
			continue
		}
		if n < lim.MaxQuestion && cls.LooksLikeQuestion(t.Raw) {
			c := newCandidate(el, t)
			return &c
		}
	}
	for i, el := range visible {
		t := texts[i]
		n := runes(t.Raw)
		if strings.ContainsRune(t.Raw, '?') && n > lim.FallbackMin && n < lim.MaxQuestion {
			c := newCandidate(el, t)
			log.Debug().Str("question", c.Locator.String()).Msg("question found by fallback")
			return &c
		}
	}
	return nil
}

var container = dom.Any(
	dom.Tag("form", "fieldset"),
	dom.Class("quiz-container"),
	dom.Class("question-block"),
	dom.All(dom.Tag("div"), dom.AttrEquals("role", "radiogroup")),
)

// searchScope picks the subtree the answers are searched in: the nearest
// container around the question, else its grandparent, else body.
func searchScope(q *dom.Element) *dom.Element {
	if c := q.Closest(container); c != nil {
		return c
	}
	if p := q.Parent(); p != nil {
		if gp := p.Parent(); gp != nil {
			return gp
		}
	}
	return q.Document().Body()
}

func (d Detector) findAnswers(scope *dom.Element) ([]Candidate, Strategy) {
	lim := d.limits()
	answers := d.byInput(scope)
	strategy := StrategyInput
	if len(answers) < lim.MinAnswers {
		answers = append(answers, d.byList(scope)...)
		strategy = StrategyList
	}
	if len(answers) < lim.MinAnswers {
		answers = append(answers, d.byPattern(scope)...)
		strategy = StrategyPattern
	}
	if len(answers) == 0 {
		strategy = StrategyNone
	}
	return answers, strategy
}

func (d Detector) accept(t extract.PageText) bool {
	return !t.Empty() && runes(t.Raw) < d.limits().MaxAnswer
}

// byInput reads the labels of radio buttons and checkboxes.
func (d Detector) byInput(scope *dom.Element) []Candidate {
	doc := scope.Document()
	var out []Candidate
	for _, input := range scope.QueryAll(dom.Choice) {
		src := doc.LabelFor(input.ID())
		if src == nil {
			src = input.Closest(dom.Tag("label"))
		}
		if src == nil {
			src = input.Parent()
		}
		if src == nil {
			continue
		}
		if t := d.text(src); d.accept(t) {
			out = append(out, newCandidate(src, t))
		}
	}
	return out
}

// byList takes every item of every list. Nested lists contribute their items
// once per enclosing list.
func (d Detector) byList(scope *dom.Element) []Candidate {
	var out []Candidate
	for _, list := range scope.QueryAll(dom.Tag("ul", "ol")) {
		for _, item := range list.QueryAll(dom.Tag("li")) {
			if t := d.text(item); d.accept(t) {
				out = append(out, newCandidate(item, t))
			}
		}
	}
	return out
}

var patternTags = dom.Tag("div", "span", "p", "button", "a")

// byPattern takes generic elements whose text carries an option marker.
func (d Detector) byPattern(scope *dom.Element) []Candidate {
	cls := d.classifier()
	var out []Candidate
	for _, el := range scope.QueryAll(patternTags) {
		if t := d.text(el); d.accept(t) && cls.LooksLikeAnswer(t.Raw) {
			out = append(out, newCandidate(el, t))
		}
	}
	return out
}

// dedupe keeps the first candidate per normalized text and applies the cap.
// Text that normalizes to nothing is compared by its raw form.
func (d Detector) dedupe(in []Candidate) []Candidate {
	lim := d.limits()
	seen := make(map[string]bool, len(in))
	var out []Candidate
	for _, c := range in {
		key := c.Text.Normalized
		if key == "" {
			key = "\x00" + textnorm.CollapseSpaces(c.Text.Raw)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
		if lim.MaxAnswers > 0 && len(out) == lim.MaxAnswers {
			break
		}
	}
	return out
}
