package browser

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/hyperifyio/quizlens/internal/actuate"
	"github.com/hyperifyio/quizlens/internal/dom"
)

// ScreenshotQuality is the JPEG quality of captured viewports.
const ScreenshotQuality = 90

// Page is one open tab. It satisfies actuate.Surface; every operation
// addresses elements by locator and re-queries the live page.
type Page struct {
	page *rod.Page
	url  string
}

var _ actuate.Surface = (*Page)(nil)

// URL is the address the tab was opened with.
func (p *Page) URL() string { return p.url }

// Close closes the tab.
func (p *Page) Close() error {
	if p.page == nil {
		return nil
	}
	return p.page.Close()
}

// Document takes a snapshot of the live page including layout boxes and
// control state.
func (p *Page) Document(ctx context.Context) (*dom.Document, error) {
	res, err := p.page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("browser: snapshot: %w", err)
	}
	return decodeSnapshot(res.Value.Str())
}

// Screenshot captures the visible viewport as JPEG.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	q := ScreenshotQuality
	img, err := p.page.Context(ctx).Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: &q,
	})
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	return img, nil
}

func (p *Page) ClearMarks(ctx context.Context) error {
	_, err := p.page.Context(ctx).Eval(clearMarksJS)
	return err
}

func (p *Page) Mark(ctx context.Context, loc dom.Locator, m actuate.Marker) error {
	decls := make([][2]string, len(m.Style))
	for i, d := range m.Style {
		decls[i] = [2]string{d.Property, d.Value}
	}
	return p.onElement(ctx, markJS, loc, m.Name, decls)
}

func (p *Page) ScrollIntoView(ctx context.Context, loc dom.Locator) error {
	return p.onElement(ctx, scrollJS, loc)
}

func (p *Page) EmphasizeFirstLetter(ctx context.Context, loc dom.Locator) error {
	return p.onElement(ctx, emphasizeJS, loc)
}

func (p *Page) Check(ctx context.Context, loc dom.Locator) error {
	return p.onElement(ctx, checkJS, loc)
}

func (p *Page) Click(ctx context.Context, loc dom.Locator) error {
	return p.onElement(ctx, clickJS, loc)
}

// onElement runs a script whose first argument is the locator's selector
// and which returns false when the selector matches nothing.
func (p *Page) onElement(ctx context.Context, js string, loc dom.Locator, extra ...interface{}) error {
	sel := loc.Selector()
	if sel == "" {
		return actuate.ErrStale
	}
	args := append([]interface{}{sel}, extra...)
	res, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return err
	}
	if !res.Value.Bool() {
		return actuate.ErrStale
	}
	return nil
}

type snapshot struct {
	HTML  string                  `json:"html"`
	Boxes map[string]dom.Box      `json:"boxes"`
	State map[string]controlState `json:"state"`
}

type controlState struct {
	Checked bool   `json:"checked"`
	Value   string `json:"value"`
}

// decodeSnapshot parses the output of snapshotJS. Serialized HTML carries
// attributes, not live properties, so control state is applied on top.
func decodeSnapshot(raw string) (*dom.Document, error) {
	var s snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("browser: decode snapshot: %w", err)
	}
	doc, err := dom.ParseString(s.HTML)
	if err != nil {
		return nil, fmt.Errorf("browser: parse snapshot: %w", err)
	}
	if len(s.Boxes) > 0 {
		boxes := make(map[dom.Locator]dom.Box, len(s.Boxes))
		for k, b := range s.Boxes {
			boxes[dom.Locator(k)] = b
		}
		doc.SetLayout(boxes)
	}
	for k, st := range s.State {
		el, ok := doc.Resolve(dom.Locator(k))
		if !ok {
			continue
		}
		el.SetChecked(st.Checked)
		if el.Tag() != "select" {
			el.SetAttr("value", st.Value)
		}
	}
	return doc, nil
}
