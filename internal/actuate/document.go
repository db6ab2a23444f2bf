package actuate

import (
	"context"
	"sync"

	"github.com/hyperifyio/quizlens/internal/dom"
)

// DocumentTarget applies actions to an in-memory document. It records every
// operation so callers can inspect what a pass did.
type DocumentTarget struct {
	mu      sync.Mutex
	doc     *dom.Document
	journal []string
}

// NewDocumentTarget wraps doc.
func NewDocumentTarget(doc *dom.Document) *DocumentTarget {
	return &DocumentTarget{doc: doc}
}

// Journal returns the operations applied so far, as "op locator" lines.
func (t *DocumentTarget) Journal() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.journal...)
}

func (t *DocumentTarget) record(op string, loc dom.Locator) {
	t.journal = append(t.journal, op+" "+loc.String())
}

func (t *DocumentTarget) resolve(loc dom.Locator) (*dom.Element, error) {
	el, ok := t.doc.Resolve(loc)
	if !ok {
		return nil, ErrStale
	}
	return el, nil
}

// Document returns the live document.
func (t *DocumentTarget) Document(context.Context) (*dom.Document, error) {
	return t.doc, nil
}

func (t *DocumentTarget) ClearMarks(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.doc.ClearMarks()
	t.journal = append(t.journal, "clear")
	return nil
}

func (t *DocumentTarget) Mark(_ context.Context, loc dom.Locator, m Marker) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	el, err := t.resolve(loc)
	if err != nil {
		return err
	}
	el.Mark(m.Name, m.Style...)
	t.record("mark:"+m.Name, loc)
	return nil
}

// ScrollIntoView only validates the locator; a static document has no
// viewport.
func (t *DocumentTarget) ScrollIntoView(_ context.Context, loc dom.Locator) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.resolve(loc); err != nil {
		return err
	}
	t.record("scroll", loc)
	return nil
}

func (t *DocumentTarget) EmphasizeFirstLetter(_ context.Context, loc dom.Locator) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	el, err := t.resolve(loc)
	if err != nil {
		return err
	}
	el.EmphasizeFirstLetter()
	t.record("emphasize", loc)
	return nil
}

func (t *DocumentTarget) Check(_ context.Context, loc dom.Locator) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	el, err := t.resolve(loc)
	if err != nil {
		return err
	}
	if el.InputType() == "radio" || !el.Checked() {
		t.doc.Click(el)
	}
	t.record("check", loc)
	return nil
}

func (t *DocumentTarget) Click(_ context.Context, loc dom.Locator) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	el, err := t.resolve(loc)
	if err != nil {
		return err
	}
	t.doc.Click(el)
	t.record("click", loc)
	return nil
}
