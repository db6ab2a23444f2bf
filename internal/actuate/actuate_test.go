package actuate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/quizlens/internal/dom"
	"github.com/hyperifyio/quizlens/internal/locate"
	"github.com/hyperifyio/quizlens/internal/match"
)

const quiz = `<body><form>
<p id="q">Pytanie: Jaka jest stolica Polski?</p>
<label id="w"><input type="radio" name="c" id="rw"> Warszawa</label>
<label id="k"><input type="radio" name="c" id="rk" checked> Kraków</label>
<span id="plain">Brak kontrolki</span>
<input type="checkbox" id="cb"><label for="cb" id="cbl">Zgoda</label>
</form></body>`

func setup(t *testing.T) (*dom.Document, *DocumentTarget) {
	t.Helper()
	doc, err := dom.ParseString(quiz)
	require.NoError(t, err)
	return doc, NewDocumentTarget(doc)
}

func matchFor(t *testing.T, doc *dom.Document, id string) match.Result {
	t.Helper()
	el := doc.ByID(id)
	require.NotNil(t, el)
	loc, ok := el.Locator()
	require.True(t, ok)
	return match.Result{Text: "x", Score: 1, Locator: loc, Element: el}
}

func TestApply_SelectsNestedRadio(t *testing.T) {
	doc, target := setup(t)
	var events []string
	for _, typ := range []string{"click", "input", "change"} {
		doc.On(typ, func(e dom.Event) { events = append(events, e.Type+":"+e.Target.ID()) })
	}

	act, err := Actuator{}.Apply(context.Background(), target, matchFor(t, doc, "w"), true)
	require.NoError(t, err)
	assert.True(t, act.Selected)
	assert.False(t, act.Clicked)

	assert.True(t, doc.ByID("rw").Checked())
	assert.False(t, doc.ByID("rk").Checked())
	assert.Equal(t, []string{"click:rw", "input:rw", "change:rw"}, events)

	w := doc.ByID("w")
	assert.Equal(t, "answer", w.MarkName())
	assert.Equal(t, "4px solid green", w.StyleValue("border"))
	assert.Equal(t, "lightgreen", w.StyleValue("background-color"))
	assert.Contains(t, doc.String(), `<strong data-quizlens-first="">W</strong>arszawa`)

	assert.Equal(t, []string{"clear", "scroll body/0/1", "mark:answer body/0/1", "emphasize body/0/1", "check body/0/1/0"}, target.Journal())
}

func TestApply_WithoutAutoSelectLeavesControls(t *testing.T) {
	doc, target := setup(t)
	act, err := Actuator{Delay: time.Hour}.Apply(context.Background(), target, matchFor(t, doc, "w"), false)
	require.NoError(t, err)
	assert.False(t, act.Selected)
	assert.False(t, doc.ByID("rw").Checked())
	assert.True(t, doc.ByID("rk").Checked())
	assert.Equal(t, "answer", doc.ByID("w").MarkName())
}

func TestApply_ClicksElementWithoutControl(t *testing.T) {
	doc, target := setup(t)
	var clicked []string
	doc.On("click", func(e dom.Event) { clicked = append(clicked, e.Target.ID()) })

	act, err := Actuator{}.Apply(context.Background(), target, matchFor(t, doc, "plain"), true)
	require.NoError(t, err)
	assert.True(t, act.Clicked)
	assert.Equal(t, []string{"plain"}, clicked)
}

func TestApply_LabelForCheckbox(t *testing.T) {
	doc, target := setup(t)
	doc.ByID("cb").SetChecked(true)

	act, err := Actuator{}.Apply(context.Background(), target, matchFor(t, doc, "cbl"), true)
	require.NoError(t, err)
	assert.True(t, act.Selected)
	assert.True(t, doc.ByID("cb").Checked(), "an already checked box stays checked")
}

func TestApply_ClearsEarlierMarks(t *testing.T) {
	doc, target := setup(t)
	ctx := context.Background()
	res := locate.Detector{}.Detect(doc)
	require.True(t, res.Complete())
	require.NoError(t, MarkCandidates(ctx, target, res))
	assert.NotEmpty(t, doc.Marked(CandidateMarker.Name))
	assert.Len(t, doc.Marked(QuestionMarker.Name), 1)

	_, err := Actuator{}.Apply(ctx, target, matchFor(t, doc, "k"), false)
	require.NoError(t, err)
	assert.Empty(t, doc.Marked(CandidateMarker.Name))
	assert.Empty(t, doc.Marked(QuestionMarker.Name))
	assert.Len(t, doc.Marked(AnswerMarker.Name), 1)

	_, err = Actuator{}.Apply(ctx, target, matchFor(t, doc, "w"), false)
	require.NoError(t, err)
	marked := doc.Marked("")
	require.Len(t, marked, 1)
	assert.Equal(t, "w", marked[0].ID())
	assert.Equal(t, 1, strings.Count(doc.String(), "<strong"))
}

func TestApply_DelayHonoursContext(t *testing.T) {
	doc, target := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Actuator{Delay: time.Hour}.Apply(ctx, target, matchFor(t, doc, "w"), true)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, doc.ByID("rw").Checked())
}

func TestApply_Unmatched(t *testing.T) {
	_, target := setup(t)
	_, err := Actuator{}.Apply(context.Background(), target, match.Result{Text: "x"}, true)
	assert.Error(t, err)
}

func TestDocumentTarget_StaleLocator(t *testing.T) {
	_, target := setup(t)
	err := target.Mark(context.Background(), dom.Locator("9/9"), AnswerMarker)
	assert.ErrorIs(t, err, ErrStale)
}

func TestControlFor(t *testing.T) {
	doc, _ := setup(t)
	assert.Equal(t, "rw", ControlFor(doc.ByID("w")).ID())
	assert.Equal(t, "cb", ControlFor(doc.ByID("cbl")).ID())
	assert.Nil(t, ControlFor(doc.ByID("plain")))
}
