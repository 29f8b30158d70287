package runner

import (
	"context"

	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
)

// CommandKind discriminates runner commands.
type CommandKind uint8

const (
	// CommandEvent feeds an input event to the session.
	CommandEvent CommandKind = iota
	// CommandTool arms a tool; the next event invokes it.
	CommandTool
	// CommandSelect adds an element to the selection.
	CommandSelect
	// CommandExecute runs a tool without events.
	CommandExecute
	// CommandCancel aborts the running tool.
	CommandCancel
)

var commandNames = [...]string{"event", "tool", "select", "execute", "cancel"}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// Command is one decoded instruction for the runner.
type Command struct {
	Kind    CommandKind
	Tool    string
	Event   domain.Event
	Pointer domain.ImplicitPointer
	Values  runtime.Values
}

// IOHandler defines the strategy for reading commands and presenting results.
// This allows switching between text scripts and JSON (Structured) modes.
type IOHandler interface {
	// Next returns the next command, or io.EOF when the input is exhausted.
	Next(ctx context.Context) (Command, error)

	// Output presents the operator report produced by a command.
	Output(ctx context.Context, rep domain.Report) error

	// SystemOutput presents a meta-message (errors, notices) distinct from reports.
	SystemOutput(ctx context.Context, msg string) error
}
