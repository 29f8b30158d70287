package runner

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type lineResult struct {
	text string
	err  error
}

// lineSource reads lines on a background goroutine so that Next can honor
// context cancellation while a read is blocked.
type lineSource struct {
	reader    *bufio.Reader
	lines     chan lineResult
	startOnce sync.Once
	lineNo    int
}

func newLineSource(r io.Reader) *lineSource {
	return &lineSource{reader: bufio.NewReader(r)}
}

func (s *lineSource) pump() {
	defer close(s.lines)
	for {
		text, err := s.reader.ReadString('\n')
		if text != "" {
			s.lines <- lineResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				s.lines <- lineResult{err: err}
			}
			return
		}
	}
}

// next returns the next raw line, or io.EOF once the reader is exhausted.
func (s *lineSource) next(ctx context.Context) (string, error) {
	s.startOnce.Do(func() {
		s.lines = make(chan lineResult)
		go s.pump()
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		s.lineNo++
		return res.text, nil
	}
}

// queue buffers the commands expanded from one input line.
type queue struct {
	pending []Command
}

func (q *queue) pop() (Command, bool) {
	if len(q.pending) == 0 {
		return Command{}, false
	}
	cmd := q.pending[0]
	q.pending = q.pending[1:]
	return cmd, true
}
