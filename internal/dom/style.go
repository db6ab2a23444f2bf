package dom

import "strings"

// Declaration is one property: value pair of an inline style attribute.
type Declaration struct {
	Property string
	Value    string
}

// Style parses the inline style attribute, preserving declaration order.
func (e *Element) Style() []Declaration {
	return parseStyle(e.AttrValue("style"))
}

// StyleValue returns the inline value of prop, or "".
func (e *Element) StyleValue(prop string) string {
	for _, d := range e.Style() {
		if d.Property == prop {
			return d.Value
		}
	}
	return ""
}

// SetStyle sets inline declarations, replacing existing ones for the same
// property. An empty value removes the property.
func (e *Element) SetStyle(decls ...Declaration) {
	cur := e.Style()
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		replaced := false
		for i := 0; i < len(cur); i++ {
			if cur[i].Property != prop {
				continue
			}
			if d.Value == "" {
				cur = append(cur[:i], cur[i+1:]...)
				i--
			} else {
				cur[i].Value = d.Value
			}
			replaced = true
		}
		if !replaced && d.Value != "" {
			cur = append(cur, Declaration{Property: prop, Value: d.Value})
		}
	}
	if len(cur) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatStyle(cur))
}

func parseStyle(s string) []Declaration {
	var out []Declaration
	for _, part := range strings.Split(s, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		out = append(out, Declaration{Property: prop, Value: val})
	}
	return out
}

func formatStyle(decls []Declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.Property + ": " + d.Value
	}
	return strings.Join(parts, "; ") + ";"
}
