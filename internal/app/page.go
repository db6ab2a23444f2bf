package app

import (
	"context"
	"net/http"

	"github.com/hyperifyio/quizlens/internal/actuate"
	"github.com/hyperifyio/quizlens/internal/browser"
	"github.com/hyperifyio/quizlens/internal/dom"
)

// Page is what a pass works on: something that can be read, marked up and
// interacted with, and optionally photographed.
type Page interface {
	actuate.Surface
	Screenshot(ctx context.Context) (image []byte, mimeType string, err error)
}

// StaticPage is an in-memory document, optionally paired with an image of
// it for screenshot mode.
type StaticPage struct {
	*actuate.DocumentTarget
	Image     []byte
	ImageMIME string
}

var _ Page = (*StaticPage)(nil)

// NewStaticPage wraps doc.
func NewStaticPage(doc *dom.Document) *StaticPage {
	return &StaticPage{DocumentTarget: actuate.NewDocumentTarget(doc)}
}

// ParseStaticPage parses HTML into a StaticPage.
func ParseStaticPage(html string) (*StaticPage, error) {
	doc, err := dom.ParseString(html)
	if err != nil {
		return nil, err
	}
	return NewStaticPage(doc), nil
}

func (p *StaticPage) Screenshot(context.Context) ([]byte, string, error) {
	if len(p.Image) == 0 {
		return nil, "", ErrNoScreenshot
	}
	mime := p.ImageMIME
	if mime == "" {
		mime = http.DetectContentType(p.Image)
	}
	return p.Image, mime, nil
}

// HTML renders the current state of the document.
func (p *StaticPage) HTML() string {
	doc, _ := p.Document(context.Background())
	return doc.String()
}

// LivePage adapts a browser tab.
type LivePage struct {
	*browser.Page
}

var _ Page = LivePage{}

func (p LivePage) Screenshot(ctx context.Context) ([]byte, string, error) {
	img, err := p.Page.Screenshot(ctx)
	if err != nil {
		return nil, "", err
	}
	return img, "image/jpeg", nil
}
