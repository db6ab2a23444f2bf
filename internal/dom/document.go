// Package dom is a small mutable view over an HTML document parsed with
// golang.org/x/net/html. It carries optional layout boxes captured from a
// live browser, addresses elements through re-resolvable Locators and keeps
// just enough form state (checked, value) and event dispatch to drive quiz
// pages without a browser.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Box is the rendered size of an element as reported by a browser.
type Box struct {
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	// None is true when the computed display is none.
	None bool `json:"none,omitempty"`
}

// Document owns the parsed node tree. Elements handed out by a Document are
// views into it and become stale when the tree is replaced.
type Document struct {
	root      *html.Node
	body      *html.Node
	layout    map[Locator]Box
	listeners map[string][]Listener
}

// Parse reads an HTML document. The html package always synthesizes
// <html>, <head> and <body>, so Body never returns nil for a parsed document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return fromRoot(root), nil
}

// ParseString is Parse for an in-memory string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func fromRoot(root *html.Node) *Document {
	d := &Document{root: root, listeners: map[string][]Listener{}}
	d.body = findFirst(root, atom.Body)
	if d.body == nil {
		// fragments without a body still get one to hang elements on
		d.body = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		root.AppendChild(d.body)
	}
	return d
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Body returns the <body> element.
func (d *Document) Body() *Element { return d.wrap(d.body) }

// Elements returns every element under <body> (excluding body itself) in
// document order.
func (d *Document) Elements() []*Element {
	return d.Body().Descendants()
}

// ByID returns the first element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *html.Node
	walkElements(d.root, func(n *html.Node) bool {
		if attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

// SetLayout attaches rendered boxes keyed by locator. With a layout present,
// visibility is decided from the boxes instead of static heuristics.
func (d *Document) SetLayout(boxes map[Locator]Box) {
	d.layout = boxes
}

// HasLayout reports whether browser boxes are attached.
func (d *Document) HasLayout() bool { return d.layout != nil }

// Render writes the current tree as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// walkElements visits element nodes below n in document order until fn
// returns false.
func walkElements(n *html.Node, fn func(*html.Node) bool) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if !fn(c) {
			return false
		}
		if !walkElements(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
