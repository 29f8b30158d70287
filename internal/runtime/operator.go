// Package runtime drives interactive tool operators: a state machine that turns
// classified input events into picks, typed values and domain operations.
package runtime

import (
	"context"
	"log/slog"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/ports"
)

// DefaultMoveThreshold is the distance a mouse move must travel, in screen
// units, to count as pointer movement.
const DefaultMoveThreshold = 0.1

// Operator runs one tool against one host. It owns its run-state; a single
// Operator must only receive events from one goroutine at a time.
type Operator struct {
	tool *domain.Tool
	host ports.Host

	logger        *slog.Logger
	hooks         domain.LifecycleHooks
	moveThreshold float64
	keymapHint    string

	ctx     context.Context
	props   map[string]*domain.Property
	rs      *runState
	running bool

	// opFailed is set when Main reported failure during the current event.
	opFailed bool
}

// Option configures an Operator.
type Option func(*Operator)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Operator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *Operator) {
		o.hooks = o.hooks.Merge(hooks)
	}
}

// WithMoveThreshold sets the minimal travel of a mouse move.
func WithMoveThreshold(d float64) Option {
	return func(o *Operator) {
		if d >= 0 {
			o.moveThreshold = d
		}
	}
}

// WithKeymapHint sets the key binding shown in the tool description.
func WithKeymapHint(hint string) Option {
	return func(o *Operator) {
		o.keymapHint = hint
	}
}

// New validates tool and prepares an operator for it.
func New(tool *domain.Tool, host ports.Host, opts ...Option) (*Operator, error) {
	if err := Validate(tool); err != nil {
		return nil, err
	}
	o := &Operator{
		tool:          tool,
		host:          host,
		logger:        logging.NewNop(),
		moveThreshold: DefaultMoveThreshold,
		ctx:           context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("tool", tool.ID)
	o.reset()
	return o, nil
}

// reset clears every property and the run-state.
func (o *Operator) reset() {
	o.props = make(map[string]*domain.Property, len(o.tool.Properties))
	for _, d := range o.tool.Properties {
		o.props[d.Name] = domain.NewProperty(d)
	}
	o.rs = newRunState()
}

// Running reports whether the operator is waiting for events.
func (o *Operator) Running() bool { return o.running }

// Host returns the host the operator mutates.
func (o *Operator) Host() ports.Host { return o.host }

// KeymapHint returns the key binding shown in descriptions.
func (o *Operator) KeymapHint() string { return o.keymapHint }

// Tool implements domain.Session.
func (o *Operator) Tool() *domain.Tool { return o.tool }

// StateIndex implements domain.Session.
func (o *Operator) StateIndex() int { return o.rs.index }

// State implements domain.Session.
func (o *Operator) State() domain.StateDefinition {
	st, _ := o.tool.Table.At(o.rs.index)
	return st
}

// Property implements domain.Session.
func (o *Operator) Property(name string) *domain.Property {
	return o.props[name]
}

// StateProperty implements domain.Session.
func (o *Operator) StateProperty(i int) *domain.Property {
	st, ok := o.tool.Table.At(i)
	if !ok || !st.HasProperty() {
		return nil
	}
	return o.props[st.Property.Resolve(o)]
}

// Pointer implements domain.Session.
func (o *Operator) Pointer(i int) domain.ImplicitPointer {
	d, ok := o.rs.data[i]
	if !ok {
		return domain.NoPointer
	}
	p := d.pointer
	if o.tool.GlobalObject && i > 0 && p.Kind.IsMeshElement() && p.Name == "" {
		p.Name = o.globalObject()
	}
	return p
}

// IsExisting implements domain.Session.
func (o *Operator) IsExisting(i int) bool {
	d, ok := o.rs.data[i]
	return ok && d.existing
}

// Resolve implements domain.Session.
func (o *Operator) Resolve(i int) (any, bool) {
	p := o.Pointer(i)
	if p.IsZero() {
		return nil, false
	}
	return o.host.Resolve(p)
}

// Coords implements domain.Session.
func (o *Operator) Coords() domain.Vec2 { return o.rs.coords }

// InitCoords implements domain.Session.
func (o *Operator) InitCoords() (domain.Vec2, bool) {
	d := o.rs.current()
	return d.initCoords, d.hasInit
}

// NumericEdit implements domain.Session.
func (o *Operator) NumericEdit() bool {
	return o.rs.current().numeric
}

var _ domain.Session = (*Operator)(nil)
