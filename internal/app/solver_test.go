package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/quizlens/internal/dom"
	"github.com/hyperifyio/quizlens/internal/llm"
	"github.com/hyperifyio/quizlens/internal/oracle"
	"github.com/hyperifyio/quizlens/internal/report"
)

const capitalQuiz = `<html><body>
<div class="quiz">
  <p>Pytanie: Jaka jest stolica Polski?</p>
  <label id="k"><input type="radio" id="rk" name="a" value="1"> Kraków</label>
  <label id="w"><input type="radio" id="rw" name="a" value="2"> Warszawa</label>
  <label id="g"><input type="radio" id="rg" name="a" value="3"> Gdańsk</label>
</div>
</body></html>`

type fakeOracle struct {
	mu       sync.Mutex
	answer   string
	err      error
	question string
	answers  []string
	images   int
	// block, when set, is waited on inside ResolveText.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeOracle) ResolveText(_ context.Context, q string, answers []string) (string, error) {
	f.mu.Lock()
	f.question, f.answers = q, answers
	f.mu.Unlock()
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	return f.answer, f.err
}

func (f *fakeOracle) ResolveImage(_ context.Context, img []byte, _ string) (string, error) {
	f.mu.Lock()
	f.images++
	f.mu.Unlock()
	return f.answer, f.err
}

func newSolver(o oracle.Oracle, rec *report.Recorder) *Solver {
	s := &Solver{Oracle: o, Settings: Settings{AutoSelect: true}}
	if rec != nil {
		s.Notifier = rec
	}
	return s
}

func staticPage(t *testing.T, html string) *StaticPage {
	t.Helper()
	p, err := ParseStaticPage(html)
	require.NoError(t, err)
	return p
}

func doc(t *testing.T, p *StaticPage) *dom.Document {
	t.Helper()
	d, err := p.Document(context.Background())
	require.NoError(t, err)
	return d
}

func TestSolveText_HighlightsAndSelects(t *testing.T) {
	rec := &report.Recorder{}
	orc := &fakeOracle{answer: "  warszawa "}
	s := newSolver(orc, rec)
	p := staticPage(t, capitalQuiz)

	out := s.SolveText(context.Background(), p)
	require.Equal(t, KindHighlighted, out.Kind, out.Message)
	assert.NotEmpty(t, out.PassID)
	assert.Equal(t, []string{"Kraków", "Warszawa", "Gdańsk"}, orc.answers)
	assert.Contains(t, orc.question, "Jaka jest stolica Polski?")
	assert.Equal(t, "Warszawa", out.FinalAnswer)
	require.NotNil(t, out.Match)
	assert.Equal(t, 1.0, out.Match.Score)
	assert.True(t, out.Selected)
	assert.Equal(t, "AI wybrało: Warszawa...", out.Message)

	d := doc(t, p)
	assert.True(t, d.ByID("rw").Checked())
	assert.False(t, d.ByID("rk").Checked())
	marked := d.Marked("answer")
	require.Len(t, marked, 1)
	assert.Equal(t, "w", marked[0].ID())
	assert.Equal(t, "4px solid green", marked[0].StyleValue("border"))
	assert.Empty(t, d.Marked("candidate"), "answer highlight clears candidate markers")
	assert.False(t, s.Busy())

	notices := rec.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, report.Success, notices[len(notices)-1].Level)
}

func TestSolveText_NoAutoSelectOnlyHighlights(t *testing.T) {
	s := newSolver(&fakeOracle{answer: "Gdańsk"}, nil)
	s.Settings.AutoSelect = false
	p := staticPage(t, capitalQuiz)
	out := s.SolveText(context.Background(), p)
	require.Equal(t, KindHighlighted, out.Kind)
	assert.False(t, out.Selected)
	d := doc(t, p)
	assert.False(t, d.ByID("rg").Checked())
	assert.Equal(t, "g", d.Marked("answer")[0].ID())
}

func TestSolveText_MissingCredentialTouchesNothing(t *testing.T) {
	rec := &report.Recorder{}
	s := newSolver(nil, rec)
	p := staticPage(t, capitalQuiz)
	before := p.HTML()

	out := s.SolveText(context.Background(), p)
	assert.Equal(t, KindPreconditionFailed, out.Kind)
	assert.ErrorIs(t, out.Err, ErrMissingCredential)
	assert.Equal(t, "Błąd: Brak klucza API.", out.Message)
	assert.Equal(t, before, p.HTML())
	assert.Empty(t, p.Journal())
}

func TestPrecondition(t *testing.T) {
	rec := &report.Recorder{}
	out := newSolver(nil, rec).Precondition(ModeScreenshot)
	require.NotNil(t, out)
	assert.Equal(t, ModeScreenshot, out.Mode)
	assert.Equal(t, KindPreconditionFailed, out.Kind)
	assert.ErrorIs(t, out.Err, ErrMissingCredential)
	assert.Len(t, rec.Notices(), 1)

	assert.Nil(t, newSolver(&fakeOracle{answer: "x"}, nil).Precondition(ModeText))
}

func TestSolveText_DetectionFailure(t *testing.T) {
	orc := &fakeOracle{answer: "x"}
	s := newSolver(orc, nil)
	p := staticPage(t, `<body><p>Witamy na stronie głównej</p></body>`)
	out := s.SolveText(context.Background(), p)
	assert.Equal(t, KindDetectionFailed, out.Kind)
	var df *DetectionFailure
	require.True(t, errors.As(out.Err, &df))
	assert.Contains(t, out.Message, "zrzutem ekranu")
	assert.Empty(t, orc.answers, "oracle is not called")
}

func TestSolveText_SingleAnswerIsDetectionFailure(t *testing.T) {
	orc := &fakeOracle{answer: "Warszawa"}
	s := newSolver(orc, nil)
	p := staticPage(t, `<body><div class="quiz">
  <p>Pytanie: Jaka jest stolica Polski?</p>
  <label><input type="radio" name="a"> Warszawa</label>
</div></body>`)
	out := s.SolveText(context.Background(), p)
	assert.Equal(t, KindDetectionFailed, out.Kind)
	assert.Len(t, out.Answers, 1)
	assert.Empty(t, orc.answers, "oracle is not called")
	assert.False(t, s.Busy())
}

func TestSolveText_ServiceError(t *testing.T) {
	orc := &fakeOracle{err: &oracle.ServiceError{Op: "resolve text", Message: "API (403): denied", Err: &llm.ErrStatus{Code: 403}}}
	s := newSolver(orc, nil)
	s.Settings.Language = "en"
	p := staticPage(t, capitalQuiz)
	out := s.SolveText(context.Background(), p)
	assert.Equal(t, KindServiceError, out.Kind)
	assert.Equal(t, "Error: API (403): denied", out.Message)
	assert.Empty(t, doc(t, p).Marked("answer"))
	assert.False(t, s.Busy())
}

func TestSolveText_NoMatchIsManual(t *testing.T) {
	s := newSolver(&fakeOracle{answer: "Zupełnie inna odpowiedź niż wszystkie"}, nil)
	p := staticPage(t, capitalQuiz)
	out := s.SolveText(context.Background(), p)
	assert.Equal(t, KindManual, out.Kind)
	assert.ErrorIs(t, out.Err, ErrNoMatch)
	assert.True(t, strings.HasPrefix(out.Message, `AI odpowiedziało: "Zupełnie inna`))
	assert.Empty(t, doc(t, p).Marked("answer"))
}

func TestSolveText_BusyReturnsEmptyOutcome(t *testing.T) {
	orc := &fakeOracle{answer: "Warszawa", block: make(chan struct{}), entered: make(chan struct{})}
	s := newSolver(orc, nil)
	p := staticPage(t, capitalQuiz)

	done := make(chan Outcome)
	go func() { done <- s.SolveText(context.Background(), p) }()
	<-orc.entered
	require.True(t, s.Busy())

	other := staticPage(t, capitalQuiz)
	before := other.HTML()
	busy := s.SolveText(context.Background(), other)
	assert.Equal(t, Outcome{Mode: ModeText, Kind: KindBusy, Err: ErrBusy}, busy)
	assert.Equal(t, before, other.HTML())
	_, err := s.Detect(context.Background(), other)
	assert.ErrorIs(t, err, ErrBusy)

	close(orc.block)
	first := <-done
	assert.Equal(t, KindHighlighted, first.Kind)
	assert.False(t, s.Busy())

	forked := s.Fork()
	assert.False(t, forked.Busy())
	assert.Same(t, s.Oracle, forked.Oracle)
}

func TestSolveScreenshot(t *testing.T) {
	orc := &fakeOracle{answer: "Kraków"}
	s := newSolver(orc, nil)
	p := staticPage(t, capitalQuiz)
	p.Image = []byte{0xff, 0xd8, 0xff, 0xe0}

	out := s.SolveScreenshot(context.Background(), p)
	require.Equal(t, KindHighlighted, out.Kind)
	assert.Equal(t, 1, orc.images)
	assert.True(t, doc(t, p).ByID("rk").Checked())
}

func TestSolveScreenshot_NoImage(t *testing.T) {
	orc := &fakeOracle{answer: "Kraków"}
	s := newSolver(orc, nil)
	out := s.SolveScreenshot(context.Background(), staticPage(t, capitalQuiz))
	assert.Equal(t, KindPreconditionFailed, out.Kind)
	assert.ErrorIs(t, out.Err, ErrNoScreenshot)
	assert.Zero(t, orc.images)
}

func TestDetect_MarksCandidates(t *testing.T) {
	s := newSolver(nil, nil)
	p := staticPage(t, capitalQuiz)
	res, err := s.Detect(context.Background(), p)
	require.NoError(t, err)
	assert.Len(t, res.Answers, 3)
	d := doc(t, p)
	assert.Len(t, d.Marked("candidate"), 3)
	assert.Len(t, d.Marked("question"), 1)
}

func TestOutcomeSummary(t *testing.T) {
	o := Outcome{Mode: ModeText, Kind: KindHighlighted, FinalAnswer: "A", Match: &Match{Text: "A", Score: 0.9, Locator: "body/1"}}
	sum := o.Summary()
	assert.Equal(t, "highlighted", sum.Kind)
	assert.Equal(t, "body/1", sum.Locator)
	assert.Equal(t, 0.9, sum.MatchScore)
}

func TestStatusTruncatesToFiftyRunes(t *testing.T) {
	long := strings.Repeat("ż", 60)
	got := english.status(long)
	assert.Equal(t, "AI chose: "+strings.Repeat("ż", 50)+"...", got)
}
