package ports

import "github.com/aretw0/stencil/pkg/domain"

// Picker hit-tests the scene under the cursor.
type Picker interface {
	// PickNearest returns the element of an allowed kind nearest to coords,
	// skipping elements for which ignore returns true.
	// It returns false when nothing lies within the host's tolerance.
	PickNearest(coords domain.Vec2, kinds domain.KindSet, ignore func(domain.ImplicitPointer) bool) (domain.ImplicitPointer, bool)
}

// Resolver turns an implicit pointer into a live handle.
// Handles are only valid until the scene is next rolled back.
type Resolver interface {
	Resolve(p domain.ImplicitPointer) (any, bool)
}

// SelectionSource exposes the current selection, in selection order.
type SelectionSource interface {
	Selection() []domain.ImplicitPointer
}

// UndoStack is the host's undo history.
// After PushCheckpoint followed by Undo, the scene is back at the previous checkpoint.
type UndoStack interface {
	PushCheckpoint(label string)
	Undo()
}

// Chrome is the host's status line and cursor.
type Chrome interface {
	SetStatus(text string)
	SetCursor(c domain.CursorKind)
}

// UnitParser converts text with unit suffixes into base-unit values.
type UnitParser interface {
	ParseWithUnit(text string, unit domain.UnitKind) (float64, error)
}

// Host aggregates every port an interactive operator consumes.
type Host interface {
	Picker
	Resolver
	SelectionSource
	UndoStack
	Chrome
	UnitParser
}
