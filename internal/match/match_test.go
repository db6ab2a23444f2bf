package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/quizlens/internal/dom"
)

var capitals = []string{"Warsaw", "Paris", "Rome"}

func TestResolveOption(t *testing.T) {
	opt, ok := ResolveOption("Paris", capitals, 0)
	require.True(t, ok)
	assert.Equal(t, "Paris", opt.Text)
	assert.Equal(t, 1, opt.Index)
	assert.Equal(t, ScoreExact, opt.Score)

	opt, ok = ResolveOption("I think it's Paris.", capitals, 0)
	require.True(t, ok)
	assert.Equal(t, "Paris", opt.Text)
	assert.Equal(t, ScoreAnswerContains, opt.Score)

	opt, ok = ResolveOption("banana", capitals, 0)
	assert.False(t, ok)
	assert.Zero(t, opt.Score)
}

func TestResolveOption_OptionContainsAnswer(t *testing.T) {
	opt, ok := ResolveOption("paris", []string{"B) Paris, France", "C) Rome"}, 0)
	require.True(t, ok)
	assert.Equal(t, "B) Paris, France", opt.Text)
	assert.Equal(t, ScoreOptionContains, opt.Score)
}

func TestResolveOption_FirstBestWins(t *testing.T) {
	opt, ok := ResolveOption("rome", []string{"Rome!", "ROME", "Paris"}, 0)
	require.True(t, ok)
	assert.Equal(t, 0, opt.Index)
}

func TestResolveOption_Threshold(t *testing.T) {
	_, ok := ResolveOption("I think it's Paris.", capitals, 0.85)
	assert.False(t, ok)
	_, ok = ResolveOption("Paris", capitals, 0.99)
	assert.True(t, ok)
}

func TestResolveOption_EmptyNeverContains(t *testing.T) {
	_, ok := ResolveOption("???", []string{"!!!", "Rome"}, 0)
	assert.False(t, ok)
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 3, EditDistance("kitten", "sitting"))
	assert.Equal(t, 0, EditDistance("Warszawa", "WARSZAWA"))
	assert.Equal(t, 4, EditDistance("", "abcd"))
	assert.Equal(t, 1, EditDistance("Kraków", "Krakow"))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 4.0/7.0, Similarity("kitten", "sitting"), 1e-9)
	assert.InDelta(t, 0.571, Similarity("kitten", "sitting"), 0.001)
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("", "abc"))
	assert.Equal(t, 1.0, Similarity("Gdańsk", "GDAŃSK"))

	pairs := [][2]string{
		{"kitten", "sitting"},
		{"Warszawa", "Warsaw"},
		{"a) Paris", "Paris"},
		{"żółw", "zolw"},
		{"", "x"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q / %q", p[0], p[1])
	}
}

func TestScanner_Best(t *testing.T) {
	doc, err := dom.ParseString(`<body><div id="wrap">
		<p>Pytanie: Jaka jest stolica Polski?</p>
		<label id="w"><input type="radio"> Warszawa</label>
		<label id="k"><input type="radio"> Kraków</label>
	</div></body>`)
	require.NoError(t, err)

	res := Scanner{}.Best(doc, "Warszawa")
	require.True(t, res.Matched())
	assert.Equal(t, "w", res.Element.ID())
	assert.Equal(t, 1.0, res.Score)
	el, ok := doc.Resolve(res.Locator)
	require.True(t, ok)
	assert.True(t, el.Is(res.Element))

	res = Scanner{}.Best(doc, "krakow")
	require.True(t, res.Matched())
	assert.Equal(t, "k", res.Element.ID())
	assert.Equal(t, "Kraków", res.Text)
}

func TestScanner_NoMatchKeepsAnswer(t *testing.T) {
	doc, err := dom.ParseString(`<body><p>Zupełnie inny tekst</p></body>`)
	require.NoError(t, err)

	res := Scanner{}.Best(doc, "Warszawa")
	assert.False(t, res.Matched())
	assert.Equal(t, "Warszawa", res.Text)
	assert.Less(t, res.Score, DefaultScanThreshold)

	res = Scanner{Threshold: 0.99}.Best(doc, "Zupełnie inny tekst!")
	assert.False(t, res.Matched())
}

func TestScanner_TiesGoToFirstElement(t *testing.T) {
	doc, err := dom.ParseString(`<body><span id="a">Tak</span><span id="b">tak</span></body>`)
	require.NoError(t, err)
	res := Scanner{}.Best(doc, "TAK")
	require.True(t, res.Matched())
	assert.Equal(t, "a", res.Element.ID())
}
