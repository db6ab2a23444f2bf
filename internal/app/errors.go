package app

import "errors"

var (
	// ErrMissingCredential means no API key is configured. Nothing on the
	// page is touched when it is returned.
	ErrMissingCredential = errors.New("no API key configured")
	// ErrNoMatch means the oracle answered but no element on the page
	// resembles the answer closely enough. The answer is shown for manual
	// selection.
	ErrNoMatch = errors.New("no element on the page matches the answer")
	// ErrBusy means another pass is in flight.
	ErrBusy = errors.New("a pass is already running")
	// ErrNoScreenshot means the page cannot provide an image.
	ErrNoScreenshot = errors.New("no screenshot available for this page")
)

// DetectionFailure means no question, or a question without answers, was
// found.
type DetectionFailure struct {
	Reason string
}

func (e *DetectionFailure) Error() string { return "detection failed: " + e.Reason }
