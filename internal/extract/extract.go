// Package extract derives canonical visible text for DOM elements.
package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/hyperifyio/quizlens/internal/dom"
	"github.com/hyperifyio/quizlens/internal/textnorm"
)

// PageText is text taken from one element together with its normalized
// comparison form.
type PageText struct {
	Raw        string
	Normalized string
}

// NewPageText builds a PageText from already extracted text.
func NewPageText(raw string) PageText {
	return PageText{Raw: raw, Normalized: textnorm.Normalize(raw)}
}

// Len is the length of the raw text in characters.
func (p PageText) Len() int { return utf8.RuneCountInString(p.Raw) }

// Empty reports whether there is no raw text.
func (p PageText) Empty() bool { return p.Raw == "" }

// Of extracts the canonical text of el.
func Of(el *dom.Element) PageText { return NewPageText(Text(el)) }

// Text derives the visible text of el. The first non-empty source wins:
// rendered text; the value or placeholder of input and textarea controls;
// aria-label; title; raw text content including non-rendered text.
// Whitespace is collapsed whatever the source. Nil elements yield "".
func Text(el *dom.Element) string {
	if el == nil {
		return ""
	}
	text := strings.TrimSpace(Rendered(el))

	switch el.Tag() {
	case "input", "textarea":
		if v := strings.TrimSpace(el.Value()); v != "" {
			text = v
		} else if p := strings.TrimSpace(el.AttrValue("placeholder")); p != "" {
			text = p
		}
	}

	if text == "" {
		text = firstNonBlank(el.AttrValue("aria-label"), el.AttrValue("title"), el.RawText())
	}
	return textnorm.CollapseSpaces(text)
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Rendered approximates innerText: text of displayed descendants with block
// boundaries turned into line breaks. An element that is not displayed
// itself reports its raw text, as browsers do.
func Rendered(el *dom.Element) string {
	if el == nil {
		return ""
	}
	doc := el.Document()
	if !doc.Displayed(el.Node()) {
		return el.RawText()
	}
	var b strings.Builder
	collectText(&b, doc, el.Node())
	return b.String()
}

func collectText(b *strings.Builder, doc *dom.Document, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if !doc.Displayed(c) {
				continue
			}
			name := strings.ToLower(c.Data)
			switch name {
			case "br":
				b.WriteString("\n")
				continue
			case "textarea", "select", "input":
				// form control contents are not part of innerText
				continue
			}
			block := isBlock(name)
			if block {
				b.WriteString("\n")
			}
			collectText(b, doc, c)
			if block {
				b.WriteString("\n")
			}
		}
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "address", "article", "aside", "blockquote", "dd", "details", "dialog", "div", "dl", "dt",
		"fieldset", "figcaption", "figure", "footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hr", "legend", "li", "main", "nav", "ol", "p", "pre", "section", "summary",
		"table", "tr", "td", "th", "caption", "ul", "option":
		return true
	}
	return false
}
