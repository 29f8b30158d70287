package domain

// Session is the view of a running operator handed to tool callbacks.
type Session interface {
	// Tool returns the tool being run.
	Tool() *Tool
	// StateIndex returns the index of the active state.
	StateIndex() int
	// State returns the active state definition.
	State() StateDefinition
	// Property returns the named property, or nil.
	Property(name string) *Property
	// StateProperty returns the property backing state i, or nil.
	StateProperty(i int) *Property
	// Pointer returns the implicit pointer of state i, with the global object filled in.
	Pointer(i int) ImplicitPointer
	// IsExisting reports whether state i refers to an element that predates the operator.
	IsExisting(i int) bool
	// Resolve re-derives a live handle for state i from the host.
	Resolve(i int) (any, bool)
	// Coords returns the last known cursor position.
	Coords() Vec2
	// InitCoords returns the position captured when the active state first ran its StateFunc.
	InitCoords() (Vec2, bool)
	// NumericEdit reports whether the active state is receiving typed values.
	NumericEdit() bool
}
