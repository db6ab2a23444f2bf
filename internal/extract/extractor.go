package extract

import "github.com/hyperifyio/quizlens/internal/dom"

// Extractor turns an element into comparable text. Implementations must not
// mutate the element.
type Extractor interface {
	Extract(el *dom.Element) PageText
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(el *dom.Element) PageText

func (f ExtractorFunc) Extract(el *dom.Element) PageText { return f(el) }

// Default is the priority-based extractor used by detection and matching.
var Default Extractor = ExtractorFunc(Of)
