package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stencil/pkg/domain"
)

// ReportRenderer formats a report for display, e.g. with terminal colors.
type ReportRenderer func(domain.Report) string

// TextHandler reads a text script and prints one line per report.
type TextHandler struct {
	Writer   io.Writer
	Renderer ReportRenderer
	Echo     bool // print each command line before its report

	src    *lineSource
	queue  queue
	cursor cursor
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextRenderer configures the report renderer.
func WithTextRenderer(r ReportRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = r
	}
}

// WithEcho prints every script line as it is consumed.
func WithEcho(echo bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Echo = echo
	}
}

// NewTextHandler creates a handler for text scripts.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Writer: w,
		src:    newLineSource(r),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Next(ctx context.Context) (Command, error) {
	for {
		if cmd, ok := h.queue.pop(); ok {
			return cmd, nil
		}
		line, err := h.src.next(ctx)
		if err != nil {
			return Command{}, err
		}
		raw, err := ParseLine(line)
		if err != nil {
			return Command{}, fmt.Errorf("line %d: %w", h.src.lineNo, err)
		}
		if raw == nil {
			continue
		}
		w, err := decodeWire(raw)
		if err != nil {
			return Command{}, fmt.Errorf("line %d: %w", h.src.lineNo, err)
		}
		cmds, err := w.commands(&h.cursor)
		if err != nil {
			return Command{}, fmt.Errorf("line %d: %w", h.src.lineNo, err)
		}
		if h.Echo {
			fmt.Fprintf(h.Writer, "> %s", line)
		}
		h.queue.pending = cmds
	}
}

func (h *TextHandler) Output(ctx context.Context, rep domain.Report) error {
	if h.Renderer != nil {
		_, err := fmt.Fprintln(h.Writer, h.Renderer(rep))
		return err
	}
	_, err := fmt.Fprintln(h.Writer, FormatReport(rep))
	return err
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "! %s\n", msg)
	return err
}

// FormatReport renders a report as one plain line.
func FormatReport(rep domain.Report) string {
	text := rep.Status
	if text == "" {
		text = rep.Tool
	}
	flags := ""
	if rep.Chained {
		flags += " (chained)"
	}
	if rep.OperationFailed {
		flags += " (operation failed)"
	}
	return fmt.Sprintf("[%s] %s%s", rep.Result, text, flags)
}
