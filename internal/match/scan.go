package match

import (
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizlens/internal/dom"
	"github.com/hyperifyio/quizlens/internal/extract"
)

// Result is the best element found for an answer. Element and Locator are
// unset when nothing cleared the threshold; Text then carries the answer
// itself so the caller can show it.
type Result struct {
	Text    string
	Score   float64
	Locator dom.Locator
	Element *dom.Element
}

// Matched reports whether an element was accepted.
func (r Result) Matched() bool { return r.Element != nil }

// Scanner performs open-set resolution against the current page.
type Scanner struct {
	// Threshold the best score must exceed; <= 0 means DefaultScanThreshold.
	Threshold float64
	Extractor extract.Extractor
}

func (s Scanner) threshold() float64 {
	if s.Threshold <= 0 {
		return DefaultScanThreshold
	}
	return s.Threshold
}

// Best scores every element under body against answer and returns the one
// with the strictly highest similarity, the earliest on ties. The document
// must be a fresh read of the page; candidates from detection are ignored.
func (s Scanner) Best(doc *dom.Document, answer string) Result {
	res := Result{Text: answer}
	if doc == nil {
		return res
	}
	ex := s.Extractor
	if ex == nil {
		ex = extract.Default
	}
	var best *dom.Element
	var bestText string
	var bestScore float64
	for _, el := range doc.Elements() {
		t := ex.Extract(el)
		if t.Empty() {
			continue
		}
		if score := Similarity(t.Raw, answer); score > bestScore {
			best, bestText, bestScore = el, t.Raw, score
		}
	}
	res.Score = bestScore
	if best == nil || bestScore <= s.threshold() {
		log.Debug().Float64("score", bestScore).Msg("no element cleared the threshold")
		return res
	}
	loc, ok := best.Locator()
	if !ok {
		return res
	}
	res.Text = bestText
	res.Locator = loc
	res.Element = best
	return res
}
