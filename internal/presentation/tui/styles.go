package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles colors command output according to the terminal behind w.
// Writers that are not terminals get plain text.
type Styles struct {
	out *termenv.Output
}

// NewStyles detects the color profile of w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{out: termenv.NewOutput(w)}
}

// NewPlainStyles returns styles that never emit escape sequences.
func NewPlainStyles(w io.Writer) *Styles {
	return &Styles{out: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))}
}

// Accent highlights names such as pages and states.
func (s *Styles) Accent(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#22d3ee")).Bold().String()
}

// Muted renders secondary information.
func (s *Styles) Muted(text string) string {
	return s.out.String(text).Faint().String()
}

// Success marks positive outcomes.
func (s *Styles) Success(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#4ade80")).String()
}

// Failure marks errors and misses.
func (s *Styles) Failure(text string) string {
	return s.out.String(text).Foreground(s.out.Color("#f87171")).String()
}
