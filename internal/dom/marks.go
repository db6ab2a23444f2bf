package dom

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attributes used to tag and later undo visual markers.
const (
	MarkAttr        = "data-quizlens"
	savedStyleAttr  = "data-quizlens-style"
	firstLetterAttr = "data-quizlens-first"
)

// Mark tags e with a named marker and applies inline declarations. The
// element's original inline style is kept aside on the first mark so that
// ClearMarks can restore it.
func (e *Element) Mark(name string, decls ...Declaration) {
	if !e.HasAttr(MarkAttr) {
		if s, ok := e.Attr("style"); ok {
			e.SetAttr(savedStyleAttr, s)
		}
	}
	e.SetAttr(MarkAttr, name)
	e.SetStyle(decls...)
}

// MarkName returns the marker applied to e, or "".
func (e *Element) MarkName() string { return e.AttrValue(MarkAttr) }

// Marked returns elements carrying the named marker; an empty name returns
// every marked element.
func (d *Document) Marked(name string) []*Element {
	return d.wrap(d.root).QueryAll(func(e *Element) bool {
		v, ok := e.Attr(MarkAttr)
		return ok && (name == "" || v == name)
	})
}

// ClearMarks removes every marker and first-letter emphasis, restoring the
// original inline styles. It returns the number of unmarked elements.
func (d *Document) ClearMarks() int {
	marked := d.Marked("")
	for _, el := range marked {
		if s, ok := el.Attr(savedStyleAttr); ok {
			el.SetAttr("style", s)
			el.RemoveAttr(savedStyleAttr)
		} else {
			el.RemoveAttr("style")
		}
		el.RemoveAttr(MarkAttr)
	}
	for _, strong := range d.wrap(d.root).QueryAll(func(e *Element) bool { return e.HasAttr(firstLetterAttr) }) {
		unwrap(strong.node)
	}
	return len(marked)
}

// EmphasizeFirstLetter wraps the first visible character of e's text in a
// <strong>, leaving the rest of the text and every child element in place.
// It returns false when there is no text or e is already emphasized.
func (e *Element) EmphasizeFirstLetter() bool {
	if e.Query(func(x *Element) bool { return x.HasAttr(firstLetterAttr) }) != nil {
		return false
	}
	t := e.doc.firstTextNode(e.node)
	if t == nil {
		return false
	}
	idx := strings.IndexFunc(t.Data, func(r rune) bool { return !unicode.IsSpace(r) })
	lead := t.Data[:idx]
	r, size := utf8.DecodeRuneInString(t.Data[idx:])
	rest := t.Data[idx+size:]

	strong := &html.Node{
		Type:     html.ElementNode,
		Data:     "strong",
		DataAtom: atom.Strong,
		Attr:     []html.Attribute{{Key: firstLetterAttr}},
	}
	strong.AppendChild(&html.Node{Type: html.TextNode, Data: string(r)})

	p := t.Parent
	if lead != "" {
		p.InsertBefore(&html.Node{Type: html.TextNode, Data: lead}, t)
	}
	p.InsertBefore(strong, t)
	if rest == "" {
		p.RemoveChild(t)
	} else {
		t.Data = rest
	}
	return true
}

func (d *Document) firstTextNode(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return c
			}
		case html.ElementNode:
			if !d.Displayed(c) || c.DataAtom == atom.Textarea || c.DataAtom == atom.Select {
				continue
			}
			if t := d.firstTextNode(c); t != nil {
				return t
			}
		}
	}
	return nil
}

func unwrap(n *html.Node) {
	p := n.Parent
	if p == nil {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		p.InsertBefore(c, n)
		c = next
	}
	p.RemoveChild(n)
	mergeText(p)
}

func mergeText(p *html.Node) {
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		for c.Type == html.TextNode && c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
			next := c.NextSibling
			c.Data += next.Data
			p.RemoveChild(next)
		}
	}
}
