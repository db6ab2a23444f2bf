package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Locator addresses an element by its element-child index path from <body>,
// e.g. "0/3/1". The empty Locator is body itself. Locators survive
// re-parsing and snapshots of the same page, so they are what crosses the
// gap between detection and actuation; element handles are not.
type Locator string

// BodyLocator addresses <body>.
const BodyLocator Locator = ""

// Locator returns the path of e from body. ok is false when e is not inside
// body.
func (e *Element) Locator() (Locator, bool) {
	var idx []int
	n := e.node
	for n != nil && n != e.doc.body {
		p := n.Parent
		if p == nil {
			return "", false
		}
		i := 0
		for c := p.FirstChild; c != nil && c != n; c = c.NextSibling {
			if c.Type == html.ElementNode {
				i++
			}
		}
		idx = append(idx, i)
		n = p
	}
	if n == nil {
		return "", false
	}
	parts := make([]string, len(idx))
	for i := range idx {
		parts[len(idx)-1-i] = strconv.Itoa(idx[i])
	}
	return Locator(strings.Join(parts, "/")), true
}

// Path returns the child indices of the locator.
func (l Locator) Path() ([]int, bool) {
	if l == BodyLocator {
		return nil, true
	}
	parts := strings.Split(string(l), "/")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// Selector renders the locator as a CSS selector usable with
// document.querySelector.
func (l Locator) Selector() string {
	path, ok := l.Path()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString("body")
	for _, i := range path {
		b.WriteString(" > :nth-child(")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(")")
	}
	return b.String()
}

func (l Locator) String() string {
	if l == BodyLocator {
		return "body"
	}
	return "body/" + string(l)
}

// Resolve finds the element addressed by l in the current tree.
func (d *Document) Resolve(l Locator) (*Element, bool) {
	path, ok := l.Path()
	if !ok {
		return nil, false
	}
	n := d.body
	for _, want := range path {
		i := 0
		var next *html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if i == want {
				next = c
				break
			}
			i++
		}
		if next == nil {
			return nil, false
		}
		n = next
	}
	return d.wrap(n), true
}
