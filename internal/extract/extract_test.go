package extract

import (
	"testing"

	"github.com/hyperifyio/quizlens/internal/dom"
)

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	d, err := dom.ParseString(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestText_RenderedTextWins(t *testing.T) {
	d := parse(t, `<body><div id="q" aria-label="label" title="title">
		Jaka jest   <b>stolica</b>
		Polski?<script>var x = 1;</script><span style="display:none">ukryte</span>
	</div></body>`)
	if got := Text(d.ByID("q")); got != "Jaka jest stolica Polski?" {
		t.Fatalf("got %q", got)
	}
}

func TestText_BlockChildrenSeparateWords(t *testing.T) {
	d := parse(t, `<body><div id="d"><p>Warszawa</p><p>Kraków</p>Gdańsk<br>Łódź</div></body>`)
	if got := Text(d.ByID("d")); got != "Warszawa Kraków Gdańsk Łódź" {
		t.Fatalf("got %q", got)
	}
}

func TestText_InputValueThenPlaceholder(t *testing.T) {
	d := parse(t, `<body>
		<input id="v" value="  odpowiedź  " placeholder="ph">
		<input id="p" placeholder="Wpisz tekst">
		<textarea id="t">  notatka </textarea>
		<input id="a" type="radio" aria-label="Opcja A">
	</body>`)
	cases := map[string]string{
		"v": "odpowiedź",
		"p": "Wpisz tekst",
		"t": "notatka",
		"a": "Opcja A",
	}
	for id, want := range cases {
		if got := Text(d.ByID(id)); got != want {
			t.Errorf("%s: got %q want %q", id, got, want)
		}
	}
}

func TestText_AttributeFallbacks(t *testing.T) {
	d := parse(t, `<body>
		<button id="aria" aria-label="Dalej"></button>
		<button id="title" title="Wstecz"></button>
		<div id="raw"><span hidden>  tylko   ukryty </span></div>
		<div id="none"></div>
	</body>`)
	if got := Text(d.ByID("aria")); got != "Dalej" {
		t.Fatalf("aria: got %q", got)
	}
	if got := Text(d.ByID("title")); got != "Wstecz" {
		t.Fatalf("title: got %q", got)
	}
	if got := Text(d.ByID("raw")); got != "tylko ukryty" {
		t.Fatalf("raw: got %q", got)
	}
	if got := Text(d.ByID("none")); got != "" {
		t.Fatalf("none: got %q", got)
	}
	if got := Text(nil); got != "" {
		t.Fatalf("nil: got %q", got)
	}
}

func TestText_DoesNotMutate(t *testing.T) {
	d := parse(t, `<body><label id="l"><input type="radio"> Tak</label></body>`)
	before := d.String()
	_ = Text(d.ByID("l"))
	_ = Default.Extract(d.ByID("l"))
	if d.String() != before {
		t.Fatalf("document changed by extraction")
	}
}

func TestOf_PairsNormalizedText(t *testing.T) {
	d := parse(t, `<body><p id="p">B) Paris!!</p></body>`)
	pt := Of(d.ByID("p"))
	if pt.Raw != "B) Paris!!" || pt.Normalized != "b paris" {
		t.Fatalf("got %+v", pt)
	}
	if pt.Len() != 10 || pt.Empty() {
		t.Fatalf("len=%d empty=%v", pt.Len(), pt.Empty())
	}
}
