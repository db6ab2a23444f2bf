// Package actuate highlights the matched answer on a page and optionally
// activates its form control.
package actuate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizlens/internal/dom"
	"github.com/hyperifyio/quizlens/internal/locate"
	"github.com/hyperifyio/quizlens/internal/match"
)

// DefaultDelay lets the page settle after highlighting before the control is
// activated.
const DefaultDelay = 300 * time.Millisecond

// ErrStale is returned when a locator no longer resolves on the page.
var ErrStale = errors.New("element is no longer on the page")

// Target is a page that can be marked up and interacted with. Elements are
// addressed by locators that the target resolves against its current tree.
type Target interface {
	ClearMarks(ctx context.Context) error
	Mark(ctx context.Context, loc dom.Locator, m Marker) error
	ScrollIntoView(ctx context.Context, loc dom.Locator) error
	EmphasizeFirstLetter(ctx context.Context, loc dom.Locator) error
	// Check makes a radio button or checkbox checked with a user-equivalent
	// click, so page listeners see click, input and change.
	Check(ctx context.Context, loc dom.Locator) error
	Click(ctx context.Context, loc dom.Locator) error
}

// Surface is a Target that can also be read back.
type Surface interface {
	Target
	Document(ctx context.Context) (*dom.Document, error)
}

// Action describes what Apply did.
type Action struct {
	Element  dom.Locator
	Control  dom.Locator // set when a form control was checked
	Selected bool
	Clicked  bool
}

// Actuator applies the answer highlight. The zero value activates controls
// without waiting.
type Actuator struct {
	Delay time.Duration
}

// Apply clears earlier markers, scrolls to the matched element, highlights it
// and bolds its first letter. With autoSelect it then waits Delay, reads the
// page again and checks the element's control, or clicks the element when it
// has none.
func (a Actuator) Apply(ctx context.Context, s Surface, m match.Result, autoSelect bool) (Action, error) {
	act := Action{Element: m.Locator}
	if !m.Matched() {
		return act, errors.New("actuate: no matched element")
	}
	if err := s.ClearMarks(ctx); err != nil {
		return act, fmt.Errorf("clear marks: %w", err)
	}
	if err := s.ScrollIntoView(ctx, m.Locator); err != nil {
		return act, fmt.Errorf("scroll: %w", err)
	}
	if err := s.Mark(ctx, m.Locator, AnswerMarker); err != nil {
		return act, fmt.Errorf("mark answer: %w", err)
	}
	if err := s.EmphasizeFirstLetter(ctx, m.Locator); err != nil {
		return act, fmt.Errorf("emphasize: %w", err)
	}
	if !autoSelect {
		return act, nil
	}
	if err := sleep(ctx, a.Delay); err != nil {
		return act, err
	}

	doc, err := s.Document(ctx)
	if err != nil {
		return act, fmt.Errorf("read page: %w", err)
	}
	el, ok := doc.Resolve(m.Locator)
	if !ok {
		return act, ErrStale
	}
	if ctl := ControlFor(el); ctl != nil {
		loc, ok := ctl.Locator()
		if !ok {
			return act, ErrStale
		}
		if err := s.Check(ctx, loc); err != nil {
			return act, fmt.Errorf("check control: %w", err)
		}
		act.Control = loc
		act.Selected = true
		log.Debug().Str("control", loc.String()).Msg("control selected")
		return act, nil
	}
	if err := s.Click(ctx, m.Locator); err != nil {
		return act, fmt.Errorf("click: %w", err)
	}
	act.Clicked = true
	log.Debug().Str("element", m.Locator.String()).Msg("element clicked")
	return act, nil
}

// ControlFor finds the control that activating el should select: a radio
// button or checkbox inside it, else the control of its enclosing label.
func ControlFor(el *dom.Element) *dom.Element {
	if in := el.Query(dom.Choice); in != nil {
		return in
	}
	if label := el.Closest(dom.Tag("label")); label != nil {
		return el.Document().LabelControl(label)
	}
	return nil
}

// MarkCandidates outlines the question and the answer options of a
// detection result.
func MarkCandidates(ctx context.Context, t Target, res locate.Result) error {
	if res.Question != nil {
		if err := t.Mark(ctx, res.Question.Locator, QuestionMarker); err != nil {
			return fmt.Errorf("mark question: %w", err)
		}
	}
	for _, ans := range res.Answers {
		if err := t.Mark(ctx, ans.Locator, CandidateMarker); err != nil {
			return fmt.Errorf("mark answer %s: %w", ans.Locator, err)
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
