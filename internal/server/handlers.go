package server

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/hyperifyio/quizlens/internal/app"
	"github.com/hyperifyio/quizlens/internal/locate"
)

// SolveRequest carries the page to solve in text mode.
type SolveRequest struct {
	HTML string `json:"html"`
	// AutoSelect overrides the configured setting when present.
	AutoSelect *bool `json:"autoSelect,omitempty"`
}

// ScreenshotRequest carries an image of the page and, optionally, its HTML
// for locating the answer.
type ScreenshotRequest struct {
	Image      string `json:"image"`
	MimeType   string `json:"mimeType,omitempty"`
	HTML       string `json:"html,omitempty"`
	AutoSelect *bool  `json:"autoSelect,omitempty"`
}

// SolveResponse is the outcome plus the marked-up page.
type SolveResponse struct {
	Outcome app.Outcome `json:"outcome"`
	HTML    string      `json:"html,omitempty"`
}

// DetectResponse lists what detection found.
type DetectResponse struct {
	Strategy string   `json:"strategy"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	HTML     string   `json:"html"`
}

// statusFor maps outcome kinds to HTTP statuses. Highlighted and manual
// are both successful passes.
func statusFor(k app.Kind) int {
	switch k {
	case app.KindHighlighted, app.KindManual:
		return http.StatusOK
	case app.KindDetectionFailed:
		return http.StatusUnprocessableEntity
	case app.KindServiceError:
		return http.StatusBadGateway
	case app.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case app.KindBusy:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) fork(autoSelect *bool) *app.Solver {
	f := s.solver.Fork()
	if autoSelect != nil {
		f.Settings.AutoSelect = *autoSelect
	}
	return f
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if !decode(w, r, &req) {
		return
	}
	page, err := app.ParseStaticPage(req.HTML)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid html: "+err.Error())
		return
	}
	out := s.fork(req.AutoSelect).SolveText(r.Context(), page)
	writeJSON(w, statusFor(out.Kind), SolveResponse{Outcome: out, HTML: page.HTML()})
}

func (s *Server) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	var req ScreenshotRequest
	if !decode(w, r, &req) {
		return
	}
	img, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(img) == 0 {
		writeError(w, http.StatusBadRequest, "image must be non-empty base64")
		return
	}
	page, err := app.ParseStaticPage(req.HTML)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid html: "+err.Error())
		return
	}
	page.Image, page.ImageMIME = img, req.MimeType
	out := s.fork(req.AutoSelect).SolveScreenshot(r.Context(), page)
	resp := SolveResponse{Outcome: out}
	if req.HTML != "" {
		resp.HTML = page.HTML()
	}
	writeJSON(w, statusFor(out.Kind), resp)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if !decode(w, r, &req) {
		return
	}
	page, err := app.ParseStaticPage(req.HTML)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid html: "+err.Error())
		return
	}
	res, err := s.solver.Fork().Detect(r.Context(), page)
	var df *app.DetectionFailure
	switch {
	case errors.As(err, &df):
		writeJSON(w, http.StatusUnprocessableEntity, detectResponse(res, page))
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, detectResponse(res, page))
}

func detectResponse(res locate.Result, page *app.StaticPage) DetectResponse {
	answers := res.AnswerTexts()
	if answers == nil {
		answers = []string{}
	}
	return DetectResponse{
		Strategy: string(res.Strategy),
		Question: res.QuestionText(),
		Answers:  answers,
		HTML:     page.HTML(),
	}
}
