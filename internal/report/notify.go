// Package report tells the user what a pass did: short notices while it runs
// and a written outcome report afterwards.
package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Level classifies a notice.
type Level int

const (
	Info Level = iota
	Success
	Failure
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "info"
	}
}

// Notifier receives user-facing notices. It is a side channel: failures to
// deliver are not reported back.
type Notifier interface {
	Notify(level Level, msg string)
}

// Console prints notices, one per line, colored when writing to a terminal.
type Console struct {
	w      io.Writer
	colors map[Level]*color.Color
}

// NewConsole writes to f, coloring output only when f is a terminal.
func NewConsole(f *os.File) *Console {
	return NewConsoleWriter(f, isTerminal(f))
}

// NewConsoleWriter writes to w with explicit color control.
func NewConsoleWriter(w io.Writer, colored bool) *Console {
	c := &Console{
		w: w,
		colors: map[Level]*color.Color{
			Info:    color.New(color.FgBlue),
			Success: color.New(color.FgGreen),
			Failure: color.New(color.FgRed, color.Bold),
		},
	}
	for _, col := range c.colors {
		if colored {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

func (c *Console) Notify(level Level, msg string) {
	if msg == "" {
		return
	}
	col, ok := c.colors[level]
	if !ok {
		fmt.Fprintln(c.w, msg)
		return
	}
	col.Fprintln(c.w, msg)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Notice is one recorded notification.
type Notice struct {
	Level Level
	Text  string
}

// Recorder keeps notices in memory.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *Recorder) Notify(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Text: msg})
}

// Notices returns a copy of what was recorded.
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(Level, string) {}
