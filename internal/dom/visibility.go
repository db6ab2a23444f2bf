package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Tags that never generate a box.
var nonRendered = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true,
	"title": true, "meta": true, "link": true, "base": true,
}

// Tags that have a box of their own even without text content.
var replaced = map[string]bool{
	"img": true, "input": true, "textarea": true, "select": true, "button": true,
	"iframe": true, "video": true, "canvas": true, "svg": true, "object": true,
	"embed": true, "hr": true, "progress": true, "meter": true,
}

// Displayed reports whether node n itself generates a box. Ancestors are not
// consulted. Non-element nodes are always displayed.
func (d *Document) Displayed(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return true
	}
	tag := strings.ToLower(n.Data)
	if nonRendered[tag] {
		return false
	}
	if d.layout != nil {
		if loc, ok := d.wrap(n).Locator(); ok {
			if b, ok := d.layout[loc]; ok {
				return !b.None
			}
		}
	}
	if _, ok := lookupAttr(n, "hidden"); ok {
		return false
	}
	if strings.EqualFold(strings.ReplaceAll(styleDisplay(n), " ", ""), "none") {
		return false
	}
	if tag == "input" && strings.EqualFold(strings.TrimSpace(attr(n, "type")), "hidden") {
		return false
	}
	return true
}

func styleDisplay(n *html.Node) string {
	for _, decl := range parseStyle(attr(n, "style")) {
		if decl.Property == "display" {
			return strings.TrimSuffix(strings.TrimSpace(decl.Value), "!important")
		}
	}
	return ""
}

// Visible reports whether e has a nonzero rendered width and height. With a
// browser layout attached the boxes decide; otherwise an element is visible
// when neither it nor an ancestor is hidden and it has content that would
// give it a size: non-blank text or a replaced element such as an input.
func (e *Element) Visible() bool {
	d := e.doc
	if d.layout != nil {
		loc, ok := e.Locator()
		if !ok {
			return false
		}
		b, ok := d.layout[loc]
		return ok && !b.None && b.Width > 0 && b.Height > 0
	}
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if !d.Displayed(n) {
			return false
		}
	}
	return d.hasRenderedContent(e.node)
}

func (d *Document) hasRenderedContent(n *html.Node) bool {
	if replaced[strings.ToLower(n.Data)] {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return true
			}
		case html.ElementNode:
			if d.Displayed(c) && d.hasRenderedContent(c) {
				return true
			}
		}
	}
	return false
}
