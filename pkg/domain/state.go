package domain

// Text is either a fixed string or computed when displayed.
type Text struct {
	Fixed    string
	Computed func(s Session) string
}

// FixedText wraps a literal string.
func FixedText(s string) Text { return Text{Fixed: s} }

// ComputedText wraps a callback.
func ComputedText(fn func(s Session) string) Text { return Text{Computed: fn} }

// Resolve returns the text for the given session; s may be nil for static contexts.
func (t Text) Resolve(s Session) string {
	if t.Computed != nil && s != nil {
		return t.Computed(s)
	}
	return t.Fixed
}

// PropertyRef names the property backing a state, either fixed or computed.
type PropertyRef struct {
	Name     string
	Computed func(s Session) string
}

// PropertyName builds a fixed reference.
func PropertyName(name string) PropertyRef { return PropertyRef{Name: name} }

// Resolve returns the property name for the given session.
func (r PropertyRef) Resolve(s Session) string {
	if r.Computed != nil && s != nil {
		return r.Computed(s)
	}
	return r.Name
}

// IsZero reports whether the state has no backing property.
func (r PropertyRef) IsZero() bool {
	return r.Name == "" && r.Computed == nil
}

// StateFunc computes a state's property values from the cursor position.
type StateFunc func(s Session, coords Vec2) ([]float64, bool)

// PickFunc overrides the host's nearest-element picking for a state.
type PickFunc func(s Session, coords Vec2) (ImplicitPointer, bool)

// CreateFunc synthesizes the domain element of a state from its property values.
type CreateFunc func(s Session, values []float64) (ImplicitPointer, error)

// SelectionFunc overrides how a state consumes the prefill selection.
type SelectionFunc func(s Session, sel *Selection) (ImplicitPointer, bool)

// StateDefinition describes one step of a tool.
// Definitions are immutable once placed in a StateTable.
type StateDefinition struct {
	Name        string
	Description Text
	Pointer     KindSet     // kinds this state resolves to; empty for property-only states
	Property    PropertyRef // backing scalar/vector property

	Interactive  bool // react to pointer movement, not only to confirm
	UseCreate    bool // values may be computed and an element synthesized
	AllowPrefill bool // may be resolved from the selection on invoke
	Optional     bool // not required before Main runs
	NoEvent      bool // evaluated as soon as the state is entered

	StateFunc      StateFunc
	PickElement    PickFunc
	CreateElement  CreateFunc
	ParseSelection SelectionFunc
}

// HasPointer reports whether the state targets an element.
func (d StateDefinition) HasPointer() bool {
	return !d.Pointer.Empty()
}

// HasProperty reports whether the state is backed by a property.
func (d StateDefinition) HasProperty() bool {
	return !d.Property.IsZero()
}

// Creates reports whether the state may compute values instead of picking.
// Property-only states always compute.
func (d StateDefinition) Creates() bool {
	return d.UseCreate || !d.HasPointer()
}
