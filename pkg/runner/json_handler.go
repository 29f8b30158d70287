package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
)

// JSONHandler implements the IOHandler interface for JSON-Lines communication.
// Input lines are command objects; every report is written as one JSON line.
type JSONHandler struct {
	Encoder *json.Encoder

	src    *lineSource
	queue  queue
	cursor cursor
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Encoder: json.NewEncoder(w),
		src:     newLineSource(r),
	}
}

func (h *JSONHandler) Next(ctx context.Context) (Command, error) {
	for {
		if cmd, ok := h.queue.pop(); ok {
			return cmd, nil
		}
		line, err := h.src.next(ctx)
		if err != nil {
			return Command{}, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			return Command{}, fmt.Errorf("line %d: invalid json: %w", h.src.lineNo, err)
		}
		w, err := decodeWire(raw)
		if err != nil {
			return Command{}, fmt.Errorf("line %d: %w", h.src.lineNo, err)
		}
		cmds, err := w.commands(&h.cursor)
		if err != nil {
			return Command{}, fmt.Errorf("line %d: %w", h.src.lineNo, err)
		}
		h.queue.pending = cmds
	}
}

func (h *JSONHandler) Output(ctx context.Context, rep domain.Report) error {
	return h.Encoder.Encode(rep)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(map[string]string{"type": "system", "message": msg})
}
