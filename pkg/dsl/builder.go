package dsl

import (
	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
)

// Builder manages the tool construction.
type Builder struct {
	tool   domain.Tool
	base   domain.StateTable
	order  []string
	states map[string]*StateBuilder
}

// New creates a new tool builder.
func New(id string) *Builder {
	return &Builder{
		tool:   domain.Tool{ID: id},
		states: make(map[string]*StateBuilder),
	}
}

// Label sets the display name.
func (b *Builder) Label(label string) *Builder {
	b.tool.Label = label
	return b
}

// Doc sets the docstring shown in descriptions.
func (b *Builder) Doc(doc string) *Builder {
	b.tool.Doc = doc
	return b
}

// Base starts the table from shared states; states added with State follow them.
func (b *Builder) Base(t domain.StateTable) *Builder {
	b.base = t
	return b
}

// Property declares a property.
func (b *Builder) Property(d domain.PropertyDescriptor) *Builder {
	for i, p := range b.tool.Properties {
		if p.Name == d.Name {
			b.tool.Properties[i] = d
			return b
		}
	}
	b.tool.Properties = append(b.tool.Properties, d)
	return b
}

// Scalar declares a one-component property.
func (b *Builder) Scalar(name string, unit domain.UnitKind, def float64) *Builder {
	return b.Property(domain.PropertyDescriptor{Name: name, Size: 1, Unit: unit, Default: []float64{def}})
}

// Vector declares a multi-component property.
func (b *Builder) Vector(name string, size int, unit domain.UnitKind, labels ...string) *Builder {
	return b.Property(domain.PropertyDescriptor{Name: name, Size: size, Unit: unit, Labels: labels})
}

// WaitForInput makes the tool prefill from the selection and wait for a confirm.
func (b *Builder) WaitForInput() *Builder {
	b.tool.WaitForInput = true
	return b
}

// ContinuousDraw chains runs while cont returns true; nil always continues.
func (b *Builder) ContinuousDraw(cont func(domain.Session) bool) *Builder {
	b.tool.ContinuousDraw = true
	b.tool.ContinueDraw = cont
	return b
}

// GlobalObject shares state 0's object with later mesh-element states.
func (b *Builder) GlobalObject() *Builder {
	b.tool.GlobalObject = true
	return b
}

// SkipUndo keeps changes when the tool is cancelled.
func (b *Builder) SkipUndo() *Builder {
	b.tool.SkipUndo = true
	return b
}

// Init sets the invocation callback.
func (b *Builder) Init(fn func(domain.Session, domain.Event) bool) *Builder {
	b.tool.Init = fn
	return b
}

// Main sets the domain operation.
func (b *Builder) Main(fn func(domain.Session) bool) *Builder {
	b.tool.Main = fn
	return b
}

// Fini sets the cleanup callback.
func (b *Builder) Fini(fn func(domain.Session, bool)) *Builder {
	b.tool.Fini = fn
	return b
}

// State adds a state after the ones already declared.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		def:     domain.StateDefinition{Name: name},
		builder: b,
	}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Table returns the states declared so far, after the base.
func (b *Builder) Table() domain.StateTable {
	tail := make([]domain.StateDefinition, 0, len(b.order))
	for _, name := range b.order {
		tail = append(tail, b.states[name].Build())
	}
	return b.base.Extend(tail...)
}

// Build composes the tool and validates it.
func (b *Builder) Build() (*domain.Tool, error) {
	tool := b.tool
	tool.Properties = append([]domain.PropertyDescriptor(nil), b.tool.Properties...)
	tool.Table = b.Table()
	if err := runtime.Validate(&tool); err != nil {
		return nil, err
	}
	return &tool, nil
}

// MustBuild is Build for statically defined tools; it panics on error.
func (b *Builder) MustBuild() *domain.Tool {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
