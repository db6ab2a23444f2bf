package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Summary is the printable record of one pass.
type Summary struct {
	PassID       string        `json:"passId,omitempty"`
	Mode         string        `json:"mode"`
	Kind         string        `json:"kind"`
	Strategy     string        `json:"strategy,omitempty"`
	Question     string        `json:"question,omitempty"`
	Answers      []string      `json:"answers,omitempty"`
	OracleAnswer string        `json:"oracleAnswer,omitempty"`
	FinalAnswer  string        `json:"finalAnswer,omitempty"`
	MatchText    string        `json:"matchText,omitempty"`
	MatchScore   float64       `json:"matchScore,omitempty"`
	Locator      string        `json:"locator,omitempty"`
	Selected     bool          `json:"selected"`
	Message      string        `json:"message,omitempty"`
	Elapsed      time.Duration `json:"elapsedNs,omitempty"`
}

// Markdown renders s as a short Markdown document.
func Markdown(s Summary) string {
	var b strings.Builder
	b.WriteString("# quizlens outcome\n\n")
	field := func(name, val string) {
		if val != "" {
			fmt.Fprintf(&b, "- %s: %s\n", name, val)
		}
	}
	field("Pass", s.PassID)
	field("Mode", s.Mode)
	field("Result", s.Kind)
	field("Strategy", s.Strategy)
	if s.Elapsed > 0 {
		field("Elapsed", s.Elapsed.Round(time.Millisecond).String())
	}
	if s.Question != "" {
		fmt.Fprintf(&b, "\n## Question\n\n%s\n", s.Question)
	}
	if len(s.Answers) > 0 {
		b.WriteString("\n## Answers\n\n")
		for i, a := range s.Answers {
			mark := " "
			if a == s.FinalAnswer {
				mark = "x"
			}
			fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, mark, a)
		}
	}
	if s.OracleAnswer != "" || s.MatchText != "" {
		b.WriteString("\n## Answer\n\n")
		field("Oracle", s.OracleAnswer)
		field("Chosen", s.FinalAnswer)
		if s.MatchText != "" {
			field("Matched element", fmt.Sprintf("%s (score %.2f, %s)", s.MatchText, s.MatchScore, s.Locator))
		}
		if s.Kind == "highlighted" {
			field("Selected", fmt.Sprintf("%t", s.Selected))
		}
	}
	if s.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", s.Message)
	}
	return b.String()
}

// WriteMarkdown writes the Markdown rendering of s.
func WriteMarkdown(w io.Writer, s Summary) error {
	_, err := io.WriteString(w, Markdown(s))
	return err
}

// WriteJSON writes s as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteFile writes s to path in the format implied by its extension: .pdf,
// .json, or Markdown otherwise.
func WriteFile(path string, s Summary) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return WritePDF(path, Markdown(s))
	case ".json":
		return writeWith(path, func(w io.Writer) error { return WriteJSON(w, s) })
	default:
		return writeWith(path, func(w io.Writer) error { return WriteMarkdown(w, s) })
	}
}

func writeWith(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
