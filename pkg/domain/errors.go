package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMain is returned when a tool has no Main callback.
	ErrMissingMain = errors.New("tool has no main callback")
	// ErrMissingCreate is returned when a creatable pointer state has no CreateElement callback.
	ErrMissingCreate = errors.New("creatable state has no create callback")
	// ErrUnknownProperty is returned when a state references an undeclared property.
	ErrUnknownProperty = errors.New("unknown property")
	// ErrEmptyTable is returned when a tool declares no states.
	ErrEmptyTable = errors.New("tool has no states")
	// ErrGlobalObject is returned when a global-object tool does not start with an object state.
	ErrGlobalObject = errors.New("global object tool must start with an object state")
	// ErrUnknownState is returned when a state name is not part of a tool's table.
	ErrUnknownState = errors.New("unknown state")
	// ErrIncomplete is returned when a non-modal run lacks a required state.
	ErrIncomplete = errors.New("required states are not resolved")
	// ErrNotRunning is returned when events are sent to an operator that has ended.
	ErrNotRunning = errors.New("operator is not running")
	// ErrToolNotFound is returned when a tool id is not registered.
	ErrToolNotFound = errors.New("tool not found")
	// ErrUnknownElement is returned when a host element name cannot be resolved.
	ErrUnknownElement = errors.New("unknown element")
	// ErrDocumentNotFound is returned when a document cannot be found in a store.
	ErrDocumentNotFound = errors.New("document not found")
)

// ToolConfigError reports a tool authoring mistake.
type ToolConfigError struct {
	Tool  string
	State string
	Err   error
}

func (e *ToolConfigError) Error() string {
	if e.State != "" {
		return fmt.Sprintf("tool '%s', state '%s': %v", e.Tool, e.State, e.Err)
	}
	return fmt.Sprintf("tool '%s': %v", e.Tool, e.Err)
}

func (e *ToolConfigError) Unwrap() error { return e.Err }
