package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/quizlens/internal/actuate"
	"github.com/hyperifyio/quizlens/internal/locate"
	"github.com/hyperifyio/quizlens/internal/match"
	"github.com/hyperifyio/quizlens/internal/oracle"
	"github.com/hyperifyio/quizlens/internal/report"
	"github.com/hyperifyio/quizlens/internal/session"
)

// Settings are the per-solver user preferences.
type Settings struct {
	AutoSelect bool
	// OptionThreshold is the closed-set acceptance threshold; zero means
	// match.DefaultOptionThreshold.
	OptionThreshold float64
	// Language selects the wording of notices.
	Language string
}

// Solver runs detection-to-actuation passes, one at a time. A nil Oracle
// means no credential is configured.
type Solver struct {
	Oracle   oracle.Oracle
	Detector locate.Detector
	Scanner  match.Scanner
	Actuator actuate.Actuator
	Notifier report.Notifier
	Settings Settings

	guard session.Guard
}

// Fork returns a solver with the same collaborators and its own guard, for
// callers that work on independent pages.
func (s *Solver) Fork() *Solver {
	return &Solver{
		Oracle:   s.Oracle,
		Detector: s.Detector,
		Scanner:  s.Scanner,
		Actuator: s.Actuator,
		Notifier: s.Notifier,
		Settings: s.Settings,
	}
}

// Busy reports whether a pass is running.
func (s *Solver) Busy() bool { return s.guard.Busy() }

func (s *Solver) notify(level report.Level, msg string) {
	if s.Notifier != nil {
		s.Notifier.Notify(level, msg)
	}
}

func (s *Solver) messages() messages { return messagesFor(s.Settings.Language) }

// begin checks the credential and admits the pass. A returned outcome is
// final.
// Precondition returns the failed outcome of a pass that cannot run
// because no oracle is configured, or nil when a pass may start. Callers
// that have to load a page first check it before doing so.
func (s *Solver) Precondition(mode Mode) *Outcome {
	if s.Oracle != nil {
		return nil
	}
	out := &Outcome{Mode: mode, Kind: KindPreconditionFailed, Message: s.messages().missingKey, Err: ErrMissingCredential}
	s.notify(report.Failure, out.Message)
	return out
}

func (s *Solver) begin(mode Mode) (*session.Pass, *Outcome) {
	if out := s.Precondition(mode); out != nil {
		return nil, out
	}
	pass, ok := s.guard.TryBegin()
	if !ok {
		log.Debug().Str("mode", string(mode)).Msg("pass rejected: busy")
		return nil, &Outcome{Mode: mode, Kind: KindBusy, Err: ErrBusy}
	}
	return pass, nil
}

func (s *Solver) finish(pass *session.Pass, out Outcome, logger zerolog.Logger) Outcome {
	out.PassID = pass.ID
	out.Elapsed = pass.Elapsed()
	ev := logger.Info()
	if out.Err != nil && out.Kind != KindManual {
		ev = logger.Warn().Err(out.Err)
	}
	ev.Str("kind", string(out.Kind)).Dur("elapsed", out.Elapsed).Msg("pass finished")
	s.notify(out.Kind.level(), out.Message)
	return out
}

// SolveText detects the question and answers in the page, asks the oracle,
// maps its answer back onto the page and highlights it.
func (s *Solver) SolveText(ctx context.Context, page Page) Outcome {
	pass, final := s.begin(ModeText)
	if final != nil {
		return *final
	}
	defer pass.End()
	logger := log.With().Str("pass", pass.ID).Str("mode", string(ModeText)).Logger()
	msgs := s.messages()
	out := Outcome{Mode: ModeText}

	doc, err := page.Document(ctx)
	if err != nil {
		out.Kind, out.Err = KindDetectionFailed, &DetectionFailure{Reason: "page could not be read: " + err.Error()}
		out.Message = msgs.detectionFailed
		return s.finish(pass, out, logger)
	}
	res := s.Detector.Detect(doc)
	out.Strategy = string(res.Strategy)
	out.Question = res.QuestionText()
	out.Answers = res.AnswerTexts()
	if derr := detectionError(res); derr != nil {
		out.Kind, out.Err, out.Message = KindDetectionFailed, derr, msgs.detectionFailed
		return s.finish(pass, out, logger)
	}
	logger.Debug().Str("strategy", out.Strategy).Int("answers", len(out.Answers)).Msg("quiz detected")
	s.notify(report.Info, fmt.Sprintf(msgs.found, len(out.Answers)))
	if err := actuate.MarkCandidates(ctx, page, res); err != nil {
		logger.Warn().Err(err).Msg("marking candidates failed")
	}

	s.notify(report.Info, msgs.asking)
	answer, err := s.Oracle.ResolveText(ctx, out.Question, out.Answers)
	if err != nil {
		return s.finish(pass, s.serviceFailure(out, err), logger)
	}
	out.OracleAnswer = answer
	out.FinalAnswer = answer
	if opt, ok := match.ResolveOption(answer, out.Answers, s.Settings.OptionThreshold); ok {
		out.FinalAnswer = opt.Text
		logger.Debug().Float64("score", opt.Score).Str("option", opt.Text).Msg("answer resolved to option")
	}
	return s.finish(pass, s.highlight(ctx, page, out, logger), logger)
}

// SolveScreenshot sends an image of the page to the oracle and highlights
// the element most similar to its answer.
func (s *Solver) SolveScreenshot(ctx context.Context, page Page) Outcome {
	pass, final := s.begin(ModeScreenshot)
	if final != nil {
		return *final
	}
	defer pass.End()
	logger := log.With().Str("pass", pass.ID).Str("mode", string(ModeScreenshot)).Logger()
	msgs := s.messages()
	out := Outcome{Mode: ModeScreenshot}

	img, mime, err := page.Screenshot(ctx)
	if err != nil {
		out.Kind, out.Err = KindPreconditionFailed, err
		out.Message = fmt.Sprintf(msgs.errorPrefix, err.Error())
		return s.finish(pass, out, logger)
	}
	s.notify(report.Info, msgs.asking)
	answer, err := s.Oracle.ResolveImage(ctx, img, mime)
	if err != nil {
		return s.finish(pass, s.serviceFailure(out, err), logger)
	}
	out.OracleAnswer = answer
	out.FinalAnswer = answer
	return s.finish(pass, s.highlight(ctx, page, out, logger), logger)
}

// Detect runs detection only and marks the candidates it found.
func (s *Solver) Detect(ctx context.Context, page Page) (locate.Result, error) {
	pass, ok := s.guard.TryBegin()
	if !ok {
		return locate.Result{}, ErrBusy
	}
	defer pass.End()
	doc, err := page.Document(ctx)
	if err != nil {
		return locate.Result{}, fmt.Errorf("read page: %w", err)
	}
	res := s.Detector.Detect(doc)
	if derr := detectionError(res); derr != nil {
		return res, derr
	}
	if err := actuate.MarkCandidates(ctx, page, res); err != nil {
		return res, fmt.Errorf("mark candidates: %w", err)
	}
	log.Debug().Str("pass", pass.ID).Str("strategy", string(res.Strategy)).Int("answers", len(res.Answers)).Msg("quiz detected")
	return res, nil
}

func detectionError(res locate.Result) error {
	if res.Question == nil {
		return &DetectionFailure{Reason: "no question found"}
	}
	if !res.Complete() {
		return &DetectionFailure{Reason: fmt.Sprintf("found %d answers, need at least %d", len(res.Answers), locate.DefaultLimits.MinAnswers)}
	}
	return nil
}

func (s *Solver) serviceFailure(out Outcome, err error) Outcome {
	out.Kind = KindServiceError
	out.Err = err
	msg := err.Error()
	var se *oracle.ServiceError
	if errors.As(err, &se) {
		msg = se.Message
	}
	out.Message = fmt.Sprintf(s.messages().errorPrefix, msg)
	return out
}

// highlight re-reads the page, finds the element for out.FinalAnswer and
// applies the answer marker. Anything short of that leaves the answer for
// the user to pick by hand.
func (s *Solver) highlight(ctx context.Context, page Page, out Outcome, logger zerolog.Logger) Outcome {
	msgs := s.messages()
	manual := func(err error) Outcome {
		out.Kind, out.Err = KindManual, err
		out.Message = fmt.Sprintf(msgs.manual, out.FinalAnswer)
		return out
	}

	doc, err := page.Document(ctx)
	if err != nil {
		return manual(fmt.Errorf("read page: %w", err))
	}
	m := s.Scanner.Best(doc, out.FinalAnswer)
	if !m.Matched() {
		logger.Debug().Float64("score", m.Score).Msg("no element matched the answer")
		return manual(ErrNoMatch)
	}
	out.Match = &Match{Text: m.Text, Score: m.Score, Locator: m.Locator.String()}
	logger.Debug().Float64("score", m.Score).Str("element", m.Locator.String()).Msg("answer matched")

	act, err := s.Actuator.Apply(ctx, page, m, s.Settings.AutoSelect)
	if err != nil {
		return manual(fmt.Errorf("highlight: %w", err))
	}
	out.Kind = KindHighlighted
	out.Selected = act.Selected || act.Clicked
	out.Message = msgs.status(out.FinalAnswer)
	return out
}
