package locate

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/quizlens/internal/dom"
)

func parse(t *testing.T, s string) *dom.Document {
	t.Helper()
	d, err := dom.ParseString(s)
	require.NoError(t, err)
	return d
}

const polishQuiz = `<html><body>
<div class="quiz">
  <p id="q">Pytanie: Jaka jest stolica Polski?</p>
  <label><input type="radio" name="a" value="1"> Warszawa</label>
  <label><input type="radio" name="a" value="2"> Kraków</label>
  <label><input type="radio" name="a" value="3"> Gdańsk</label>
</div>
</body></html>`

func TestDetect_InputStrategy(t *testing.T) {
	doc := parse(t, polishQuiz)
	res := Detector{}.Detect(doc)

	require.NotNil(t, res.Question)
	assert.Contains(t, res.QuestionText(), "Jaka jest stolica Polski?")
	assert.Equal(t, StrategyInput, res.Strategy)
	assert.Equal(t, []string{"Warszawa", "Kraków", "Gdańsk"}, res.AnswerTexts())
	assert.True(t, res.Complete())

	for _, a := range res.Answers {
		el, ok := doc.Resolve(a.Locator)
		require.True(t, ok)
		assert.True(t, el.Is(a.Element))
		assert.Equal(t, "label", el.Tag())
	}
}

func TestDetect_LabelForAndParentFallback(t *testing.T) {
	doc := parse(t, `<body><form>
		<p>Która planeta jest największa?</p>
		<div><input type="radio" id="j" name="p"></div><label for="j">Jowisz</label>
		<span><input type="checkbox" name="p"> Saturn</span>
	</form></body>`)
	res := Detector{}.Detect(doc)
	require.Len(t, res.Answers, 2)
	assert.Equal(t, "label", res.Answers[0].Element.Tag())
	assert.Equal(t, "Jowisz", res.Answers[0].Text.Raw)
	assert.Equal(t, "span", res.Answers[1].Element.Tag())
	assert.Equal(t, "Saturn", res.Answers[1].Text.Raw)
}

func TestDetect_NoQuestionNoAnswers(t *testing.T) {
	doc := parse(t, `<body><div>
		<p>Strona główna</p>
		<ul><li>a) Warszawa</li><li>b) Kraków</li></ul>
		<label><input type="radio"> Tak</label><label><input type="radio"> Nie</label>
	</div></body>`)
	res := Detector{}.Detect(doc)
	assert.Nil(t, res.Question)
	assert.Empty(t, res.Answers)
	assert.False(t, res.Complete())
	assert.Equal(t, StrategyNone, res.Strategy)
}

func TestDetect_InputShortCircuitsOtherStrategies(t *testing.T) {
	doc := parse(t, `<body><form>
		<p>Wybierz prawidłową odpowiedź</p>
		<label><input type="radio" name="x"> Jeden</label>
		<label><input type="radio" name="x"> Dwa</label>
		<ul><li>Lista pierwsza</li><li>Lista druga</li></ul>
		<div>a) Wzorzec</div>
	</form></body>`)
	res := Detector{}.Detect(doc)
	assert.Equal(t, StrategyInput, res.Strategy)
	assert.Equal(t, []string{"Jeden", "Dwa"}, res.AnswerTexts())
}

func TestDetect_ListStrategy(t *testing.T) {
	doc := parse(t, `<body><section><div>
		<h2>Co to jest fotosynteza?</h2>
		<ol><li>Proces w roślinach</li><li>Rodzaj skały</li><li>Gwiazdozbiór</li></ol>
	</div></section></body>`)
	res := Detector{}.Detect(doc)
	require.NotNil(t, res.Question)
	// the outermost element carrying the question text wins
	assert.Equal(t, "section", res.Question.Element.Tag())
	assert.Equal(t, StrategyList, res.Strategy)
	assert.Equal(t, []string{"Proces w roślinach", "Rodzaj skały", "Gwiazdozbiór"}, res.AnswerTexts())
}

func TestDetect_PatternStrategy(t *testing.T) {
	doc := parse(t, `<body><main><div class="question-block">
		<span>Ile nóg ma pająk?</span>
		<div>A) Sześć</div>
		<div>B) Osiem</div>
		<div>Zwykły tekst</div>
		<button>Tak</button>
	</div></main></body>`)
	res := Detector{}.Detect(doc)
	assert.Equal(t, StrategyPattern, res.Strategy)
	assert.Equal(t, []string{"A) Sześć", "B) Osiem", "Tak"}, res.AnswerTexts())
}

func TestDetect_DeduplicatesByNormalizedText(t *testing.T) {
	doc := parse(t, `<body><form>
		<p>Pytanie 1: Wybierz kolor?</p>
		<label><input type="radio" id="first"> Czerwony!</label>
		<label><input type="radio" id="second"> czerwony</label>
		<label><input type="radio"> Zielony</label>
	</form></body>`)
	res := Detector{}.Detect(doc)
	require.Len(t, res.Answers, 2)
	assert.Equal(t, "Czerwony!", res.Answers[0].Text.Raw)
	assert.NotNil(t, res.Answers[0].Element.Query(dom.AttrEquals("id", "first")))
	assert.Equal(t, "Zielony", res.Answers[1].Text.Raw)
}

func TestDetect_CapsAnswers(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<body><form><p>Które z poniższych liczb są parzyste?</p>`)
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, `<label><input type="checkbox"> Liczba %d</label>`, i)
	}
	b.WriteString(`</form></body>`)
	res := Detector{}.Detect(parse(t, b.String()))
	require.Len(t, res.Answers, 10)
	assert.Equal(t, "Liczba 0", res.Answers[0].Text.Raw)
	assert.Equal(t, "Liczba 9", res.Answers[9].Text.Raw)
}

func TestDetect_FallbackPass(t *testing.T) {
	lim := DefaultLimits
	doc := parse(t, `<body>
		<p>Nie?</p>
		<p>Stolica Niemiec to Berlin?</p>
		<ul><li>Prawda</li><li>Fałsz</li></ul>
	</body>`)
	// a classifier that never matches forces the second pass
	res := Detector{Classifier: nothing(), Limits: &lim}.Detect(doc)
	require.NotNil(t, res.Question)
	assert.Equal(t, "Stolica Niemiec to Berlin?", res.QuestionText())
	assert.Equal(t, []string{"Prawda", "Fałsz"}, res.AnswerTexts())
}

func TestDetect_SkipsHiddenAndLongText(t *testing.T) {
	long := strings.Repeat("Bardzo długi akapit bez końca. ", 20) + "Jak?"
	doc := parse(t, `<body>
		<p hidden>Ukryte pytanie: co to jest?</p>
		<p>`+long+`</p>
		<div style="display: none"><p>Gdzie jest schowek?</p></div>
		<p id="q">Gdzie leży Kraków?</p>
		<ul><li>Nad Wisłą</li><li>Nad Odrą</li></ul>
	</body>`)
	res := Detector{}.Detect(doc)
	require.NotNil(t, res.Question)
	assert.Equal(t, "q", res.Question.Element.ID())
}

func TestDetect_LayoutVisibility(t *testing.T) {
	doc := parse(t, `<body><p>Pytanie: co widać?</p><form><p>Pytanie: co jest widoczne?</p>
		<label><input type="radio"> Jedno</label><label><input type="radio"> Drugie</label></form></body>`)
	doc.SetLayout(map[dom.Locator]dom.Box{
		"0":   {Width: 0, Height: 0},
		"1":   {Width: 300, Height: 120},
		"1/0": {Width: 300, Height: 20},
		"1/1": {Width: 300, Height: 20},
		"1/2": {Width: 300, Height: 20},
	})
	res := Detector{}.Detect(doc)
	require.NotNil(t, res.Question)
	assert.Equal(t, "form", res.Question.Element.Tag())
	assert.Equal(t, []string{"Jedno", "Drugie"}, res.AnswerTexts())
}

func TestSearchScope(t *testing.T) {
	doc := parse(t, `<body>
		<fieldset><div><p id="a">x</p></div></fieldset>
		<section><div><p id="b">y</p></div></section>
		<p id="c">z</p>
	</body>`)
	assert.Equal(t, "fieldset", searchScope(doc.ByID("a")).Tag())
	assert.Equal(t, "section", searchScope(doc.ByID("b")).Tag())
	assert.Equal(t, "html", searchScope(doc.ByID("c")).Tag())
}
