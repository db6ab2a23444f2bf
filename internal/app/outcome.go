package app

import (
	"time"

	"github.com/hyperifyio/quizlens/internal/report"
)

// Kind is the result class of a pass.
type Kind string

const (
	KindHighlighted        Kind = "highlighted"
	KindManual             Kind = "manual"
	KindDetectionFailed    Kind = "detection_failed"
	KindServiceError       Kind = "service_error"
	KindPreconditionFailed Kind = "precondition_failed"
	KindBusy               Kind = "busy"
)

// Mode is the input the oracle saw.
type Mode string

const (
	ModeText       Mode = "text"
	ModeScreenshot Mode = "screenshot"
	ModeDetect     Mode = "detect"
)

// Match is the element the final answer was mapped to.
type Match struct {
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
	Locator string  `json:"locator"`
}

// Outcome describes one pass. A busy outcome carries nothing but its Kind.
type Outcome struct {
	PassID       string        `json:"passId,omitempty"`
	Mode         Mode          `json:"mode"`
	Kind         Kind          `json:"kind"`
	Strategy     string        `json:"strategy,omitempty"`
	Question     string        `json:"question,omitempty"`
	Answers      []string      `json:"answers,omitempty"`
	OracleAnswer string        `json:"oracleAnswer,omitempty"`
	FinalAnswer  string        `json:"finalAnswer,omitempty"`
	Match        *Match        `json:"match,omitempty"`
	Selected     bool          `json:"selected"`
	Message      string        `json:"message,omitempty"`
	Elapsed      time.Duration `json:"elapsedNs,omitempty"`
	Err          error         `json:"-"`
}

// Summary converts the outcome for the report writers.
func (o Outcome) Summary() report.Summary {
	s := report.Summary{
		PassID:       o.PassID,
		Mode:         string(o.Mode),
		Kind:         string(o.Kind),
		Strategy:     o.Strategy,
		Question:     o.Question,
		Answers:      o.Answers,
		OracleAnswer: o.OracleAnswer,
		FinalAnswer:  o.FinalAnswer,
		Selected:     o.Selected,
		Message:      o.Message,
		Elapsed:      o.Elapsed,
	}
	if o.Match != nil {
		s.MatchText = o.Match.Text
		s.MatchScore = o.Match.Score
		s.Locator = o.Match.Locator
	}
	return s
}

// level maps the kind to a notification level.
func (k Kind) level() report.Level {
	switch k {
	case KindHighlighted:
		return report.Success
	case KindManual:
		return report.Info
	default:
		return report.Failure
	}
}
