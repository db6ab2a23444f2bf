package dom

// Event is a synthetic DOM event delivered to document listeners.
type Event struct {
	Type   string
	Target *Element
}

// Listener observes dispatched events.
type Listener func(Event)

// On registers a document-level listener for an event type. Listeners see
// every event of that type dispatched anywhere in the document, as a
// capturing listener on document would.
func (d *Document) On(eventType string, fn Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], fn)
}

// Dispatch delivers an event to the registered listeners.
func (d *Document) Dispatch(target *Element, eventType string) {
	for _, fn := range d.listeners[eventType] {
		fn(Event{Type: eventType, Target: target})
	}
}

// Click performs a user-equivalent click on e: checkboxes toggle, radio
// buttons become checked and clear the rest of their group, and labels
// forward the click to their control. Events fire in browser order: click,
// then input and change when the state changed.
func (d *Document) Click(e *Element) {
	if e == nil {
		return
	}
	changed := false
	if e.Tag() == "input" {
		switch e.InputType() {
		case "checkbox":
			e.SetChecked(!e.Checked())
			changed = true
		case "radio":
			if !e.Checked() {
				d.checkRadio(e)
				changed = true
			}
		}
	}
	d.Dispatch(e, "click")
	if changed {
		d.Dispatch(e, "input")
		d.Dispatch(e, "change")
	}
	if e.Tag() == "label" {
		if ctl := d.LabelControl(e); ctl != nil && !ctl.Is(e) {
			d.Click(ctl)
		}
	}
}

// checkRadio checks e and unchecks the other radios of its group: same name
// within the same form, or the document when it has no form.
func (d *Document) checkRadio(e *Element) {
	name := e.AttrValue("name")
	if name != "" {
		scope := e.Closest(Tag("form"))
		if scope == nil {
			scope = d.wrap(d.root)
		}
		for _, other := range scope.QueryAll(All(InputType("radio"), AttrEquals("name", name))) {
			if !other.Is(e) {
				other.SetChecked(false)
			}
		}
	}
	e.SetChecked(true)
}
