package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/waypoint/pkg/automata"
)

// Report describes one returned instance.
type Report struct {
	Line     int      `json:"line"`
	Input    string   `json:"input"`
	State    string   `json:"state"`
	Path     []string `json:"path"`
	Messages []string `json:"messages,omitempty"`
}

// NewReport builds the report for an instance returned while handling line.
func NewReport(line int, input string, inst automata.Running[string]) Report {
	names := automata.Path(inst)
	path := make([]string, len(names))
	for i, n := range names {
		path[i] = n.String()
	}
	return Report{
		Line:     line,
		Input:    input,
		State:    inst.Definition().Name().String(),
		Path:     path,
		Messages: automata.Messages(inst),
	}
}

// Reporter receives returned paths.
type Reporter interface {
	Report(ctx context.Context, rep Report) error
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, Report) error { return nil }

// ContentRenderer transforms a report line before it is written.
// This allows terminal styling without coupling the core package.
type ContentRenderer func(string) (string, error)

// TextReporter writes one human readable line per report.
type TextReporter struct {
	Writer   io.Writer
	Renderer ContentRenderer
}

// NewTextReporter creates a text reporter writing to w, or Stdout when nil.
func NewTextReporter(w io.Writer) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TextReporter{Writer: w}
}

func (h *TextReporter) Report(_ context.Context, rep Report) error {
	line := fmt.Sprintf("line %d: %s", rep.Line, strings.Join(rep.Path, " > "))
	if len(rep.Messages) > 0 {
		line += " [" + strings.Join(rep.Messages, ", ") + "]"
	}
	if h.Renderer != nil {
		if rendered, err := h.Renderer(line); err == nil {
			line = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, line)
	return err
}

// JSONReporter writes reports as JSON lines.
type JSONReporter struct {
	Encoder *json.Encoder
}

// NewJSONReporter creates a JSON lines reporter writing to w, or Stdout when nil.
func NewJSONReporter(w io.Writer) *JSONReporter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONReporter{Encoder: json.NewEncoder(w)}
}

func (h *JSONReporter) Report(_ context.Context, rep Report) error {
	return h.Encoder.Encode(rep)
}

// CollectReporter keeps reports in memory.
type CollectReporter struct {
	Reports []Report
}

func (h *CollectReporter) Report(_ context.Context, rep Report) error {
	h.Reports = append(h.Reports, rep)
	return nil
}
