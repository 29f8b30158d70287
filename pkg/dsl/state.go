package dsl

import "github.com/aretw0/stencil/pkg/domain"

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	def     domain.StateDefinition
	builder *Builder
}

// Describe sets a fixed description.
func (s *StateBuilder) Describe(text string) *StateBuilder {
	s.def.Description = domain.FixedText(text)
	return s
}

// DescribeFunc computes the description when displayed.
func (s *StateBuilder) DescribeFunc(fn func(domain.Session) string) *StateBuilder {
	s.def.Description = domain.ComputedText(fn)
	return s
}

// Pick sets the kinds the state resolves to.
func (s *StateBuilder) Pick(kinds ...domain.PointerKind) *StateBuilder {
	s.def.Pointer = domain.Kinds(kinds...)
	return s
}

// Prop binds the state to a property.
func (s *StateBuilder) Prop(name string) *StateBuilder {
	s.def.Property = domain.PropertyName(name)
	return s
}

// PropFunc computes the bound property name.
func (s *StateBuilder) PropFunc(fn func(domain.Session) string) *StateBuilder {
	s.def.Property = domain.PropertyRef{Computed: fn}
	return s
}

// Interactive makes the state follow the pointer.
func (s *StateBuilder) Interactive() *StateBuilder {
	s.def.Interactive = true
	return s
}

// Prefill lets the state resolve from the selection.
func (s *StateBuilder) Prefill() *StateBuilder {
	s.def.AllowPrefill = true
	return s
}

// Optional marks the state as not required before Main runs.
func (s *StateBuilder) Optional() *StateBuilder {
	s.def.Optional = true
	return s
}

// NoEvent evaluates the state as soon as it is entered.
func (s *StateBuilder) NoEvent() *StateBuilder {
	s.def.NoEvent = true
	return s
}

// Func sets the callback computing values from the cursor.
func (s *StateBuilder) Func(fn domain.StateFunc) *StateBuilder {
	s.def.StateFunc = fn
	return s
}

// Create lets the state synthesize its element from its values.
func (s *StateBuilder) Create(fn domain.CreateFunc) *StateBuilder {
	s.def.UseCreate = true
	s.def.CreateElement = fn
	return s
}

// PickWith overrides hit-testing.
func (s *StateBuilder) PickWith(fn domain.PickFunc) *StateBuilder {
	s.def.PickElement = fn
	return s
}

// SelectWith overrides how the selection is consumed.
func (s *StateBuilder) SelectWith(fn domain.SelectionFunc) *StateBuilder {
	s.def.ParseSelection = fn
	return s
}

// Done returns to the tool builder.
func (s *StateBuilder) Done() *Builder {
	return s.builder
}

// Build returns the underlying domain.StateDefinition.
func (s *StateBuilder) Build() domain.StateDefinition {
	return s.def
}
