package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/session"
)

// Summary counts what a run did.
type Summary struct {
	Commands  int `json:"commands"`
	Finished  int `json:"finished"`
	Cancelled int `json:"cancelled"`
	Errors    int `json:"errors"`
}

// Runner feeds commands from an IOHandler into one session.
type Runner struct {
	Handler     IOHandler
	Sessions    *session.Manager
	SessionID   string
	Logger      *slog.Logger
	StopOnError bool

	armed string
}

// NewRunner creates a Runner reading a text script from Stdin.
func NewRunner(sessions *session.Manager, opts ...Option) *Runner {
	r := &Runner{
		Sessions:  sessions,
		SessionID: DefaultSessionID,
		Logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run consumes commands until the input ends or ctx is cancelled, then closes
// the session, which cancels a tool left running and saves the document.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	runErr := r.loop(ctx, &sum)

	// The session is closed even after cancellation.
	if err := r.Sessions.Close(context.WithoutCancel(ctx), r.SessionID); err != nil {
		return sum, errors.Join(runErr, err)
	}
	r.Logger.Info("run complete",
		"session_id", r.SessionID,
		"commands", sum.Commands,
		"finished", sum.Finished,
		"cancelled", sum.Cancelled,
		"errors", sum.Errors,
	)
	return sum, runErr
}

func (r *Runner) loop(ctx context.Context, sum *Summary) error {
	for {
		cmd, err := r.Handler.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sum.Errors++
			if r.StopOnError {
				return err
			}
			if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}
		sum.Commands++

		rep, report, err := r.dispatch(ctx, cmd)
		if err != nil {
			if errors.Is(err, domain.ErrNotRunning) {
				r.Logger.Debug("event ignored, no tool running", "session_id", r.SessionID)
				continue
			}
			sum.Errors++
			if r.StopOnError {
				return err
			}
			if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}
		if !report {
			continue
		}
		switch rep.Result {
		case domain.ResultFinished:
			sum.Finished++
		case domain.ResultCancelled:
			sum.Cancelled++
		}
		if rep.Chained {
			sum.Finished++
		}
		if err := r.Handler.Output(ctx, rep); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
}

// dispatch applies one command. The boolean reports whether rep is meaningful.
func (r *Runner) dispatch(ctx context.Context, cmd Command) (domain.Report, bool, error) {
	id := r.SessionID
	switch cmd.Kind {
	case CommandTool:
		r.armed = cmd.Tool
		return domain.Report{}, false, nil
	case CommandEvent:
		if r.armed != "" {
			tool := r.armed
			r.armed = ""
			rep, err := r.Sessions.Invoke(ctx, id, tool, cmd.Event)
			return rep, err == nil, err
		}
		rep, err := r.Sessions.HandleEvent(ctx, id, cmd.Event)
		return rep, err == nil, err
	case CommandSelect:
		return domain.Report{}, false, r.Sessions.Select(ctx, id, cmd.Pointer)
	case CommandExecute:
		rep, err := r.Sessions.Execute(ctx, id, cmd.Tool, cmd.Values)
		return rep, err == nil, err
	case CommandCancel:
		r.armed = ""
		rep, err := r.Sessions.Cancel(ctx, id)
		return rep, err == nil, err
	}
	return domain.Report{}, false, fmt.Errorf("unknown command kind %d", cmd.Kind)
}
