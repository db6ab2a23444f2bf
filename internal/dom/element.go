package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a non-owning handle to an element node.
type Element struct {
	doc  *Document
	node *html.Node
}

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node { return e.node }

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Tag returns the lowercase tag name.
func (e *Element) Tag() string { return strings.ToLower(e.node.Data) }

// Is reports whether both handles point at the same node.
func (e *Element) Is(other *Element) bool {
	return e != nil && other != nil && e.node == other.node
}

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) { return lookupAttr(e.node, key) }

// AttrValue returns the attribute value or "".
func (e *Element) AttrValue(key string) string { return attr(e.node, key) }

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(key string) bool {
	_, ok := lookupAttr(e.node, key)
	return ok
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, val string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && strings.EqualFold(e.node.Attr[i].Key, key) {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	out := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			continue
		}
		out = append(out, a)
	}
	e.node.Attr = out
}

// ID returns the id attribute.
func (e *Element) ID() string { return e.AttrValue("id") }

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.AttrValue("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the direct element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Descendants returns all element descendants in document order.
func (e *Element) Descendants() []*Element {
	var out []*Element
	walkElements(e.node, func(n *html.Node) bool {
		out = append(out, e.doc.wrap(n))
		return true
	})
	return out
}

// QueryAll returns descendants matching m in document order. Like
// querySelectorAll, the element itself is never included.
func (e *Element) QueryAll(m Matcher) []*Element {
	var out []*Element
	walkElements(e.node, func(n *html.Node) bool {
		if el := e.doc.wrap(n); m(el) {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Query returns the first descendant matching m, or nil.
func (e *Element) Query(m Matcher) *Element {
	var found *Element
	walkElements(e.node, func(n *html.Node) bool {
		if el := e.doc.wrap(n); m(el) {
			found = el
			return false
		}
		return true
	})
	return found
}

// Closest returns the element itself or its nearest ancestor matching m.
func (e *Element) Closest(m Matcher) *Element {
	for cur := e; cur != nil; cur = cur.Parent() {
		if m(cur) {
			return cur
		}
	}
	return nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Checked reports the checked state of a form control.
func (e *Element) Checked() bool { return e.HasAttr("checked") }

// SetChecked updates the checked state.
func (e *Element) SetChecked(v bool) {
	if v {
		e.SetAttr("checked", "")
		return
	}
	e.RemoveAttr("checked")
}

// Value returns the current value of an input or textarea. Textareas carry
// their value as text content.
func (e *Element) Value() string {
	if e.Tag() == "textarea" {
		if v, ok := e.Attr("value"); ok {
			return v
		}
		return rawText(e.node)
	}
	return e.AttrValue("value")
}

// InputType returns the lowercase type of an <input>, defaulting to "text".
func (e *Element) InputType() string {
	t := strings.ToLower(strings.TrimSpace(e.AttrValue("type")))
	if t == "" {
		return "text"
	}
	return t
}

func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// RawText returns the concatenated text of every descendant text node,
// rendered or not (textContent).
func (e *Element) RawText() string { return rawText(e.node) }
