package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stencil/internal/presentation/tui"
	"github.com/aretw0/stencil/pkg/runner"
	"github.com/muesli/termenv"
)

// RunOptions configure a scripted session.
type RunOptions struct {
	Input       io.Reader
	Output      io.Writer
	JSON        bool // NDJSON commands and reports instead of the text script
	SessionID   string
	StopOnError bool
	Echo        bool
}

// RunScript feeds a command script to a session and closes it afterwards,
// which saves the document to the configured store.
func RunScript(ctx context.Context, env *Env, opts RunOptions) (runner.Summary, error) {
	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.Input, opts.Output)
	} else {
		textOpts := []runner.TextHandlerOption{runner.WithEcho(opts.Echo)}
		if f, ok := opts.Output.(*os.File); ok && tui.IsTerminal(f) {
			textOpts = append(textOpts, runner.WithTextRenderer(tui.ReportRenderer(termenv.NewOutput(f))))
		}
		handler = runner.NewTextHandler(opts.Input, opts.Output, textOpts...)
	}

	runOpts := []runner.Option{
		runner.WithLogger(env.Logger),
		runner.WithInputHandler(handler),
		runner.WithStopOnError(opts.StopOnError),
	}
	if opts.SessionID != "" {
		runOpts = append(runOpts, runner.WithSessionID(opts.SessionID))
	}

	sum, err := runner.NewRunner(env.Sessions(), runOpts...).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return sum, nil
	}
	return sum, err
}

// FormatSummary renders the end-of-run line printed by the run command.
func FormatSummary(sum runner.Summary) string {
	return fmt.Sprintf("%d commands, %d finished, %d cancelled, %d errors",
		sum.Commands, sum.Finished, sum.Cancelled, sum.Errors)
}
