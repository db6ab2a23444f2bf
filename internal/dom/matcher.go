package dom

import "strings"

// Matcher selects elements. Matchers compose with Any and All; they stand in
// for the handful of CSS selectors the quiz heuristics need.
type Matcher func(*Element) bool

// Tag matches any of the given tag names.
func Tag(names ...string) Matcher {
	return func(e *Element) bool {
		t := e.Tag()
		for _, n := range names {
			if strings.EqualFold(t, n) {
				return true
			}
		}
		return false
	}
}

// Class matches elements whose class list contains name.
func Class(name string) Matcher {
	return func(e *Element) bool { return e.HasClass(name) }
}

// AttrEquals matches elements whose attribute key equals val exactly.
func AttrEquals(key, val string) Matcher {
	return func(e *Element) bool {
		v, ok := e.Attr(key)
		return ok && v == val
	}
}

// InputType matches <input> elements of any of the given types.
func InputType(types ...string) Matcher {
	return func(e *Element) bool {
		if e.Tag() != "input" {
			return false
		}
		t := e.InputType()
		for _, want := range types {
			if t == want {
				return true
			}
		}
		return false
	}
}

// All matches when every matcher matches.
func All(ms ...Matcher) Matcher {
	return func(e *Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one matcher matches.
func Any(ms ...Matcher) Matcher {
	return func(e *Element) bool {
		for _, m := range ms {
			if m(e) {
				return true
			}
		}
		return false
	}
}

// Choice matches radio buttons and checkboxes.
var Choice = InputType("radio", "checkbox")

// LabelFor returns the label whose for attribute targets the given id.
func (d *Document) LabelFor(id string) *Element {
	if id == "" {
		return nil
	}
	return d.wrap(d.root).Query(All(Tag("label"), AttrEquals("for", id)))
}

// LabelControl returns the form control a label activates: the element named
// by its for attribute, else the first nested input.
func (d *Document) LabelControl(label *Element) *Element {
	if label == nil {
		return nil
	}
	if id := label.AttrValue("for"); id != "" {
		if el := d.ByID(id); el != nil {
			return el
		}
	}
	return label.Query(Tag("input"))
}
