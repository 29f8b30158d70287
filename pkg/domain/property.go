package domain

import "math"

// UnitKind selects how typed numeric text with unit suffixes is interpreted.
type UnitKind uint8

const (
	UnitNone UnitKind = iota
	UnitLength
	UnitAngle
)

func (u UnitKind) String() string {
	switch u {
	case UnitLength:
		return "length"
	case UnitAngle:
		return "angle"
	}
	return "none"
}

// PropertyDescriptor declares a scalar or vector property of a tool.
type PropertyDescriptor struct {
	Name    string
	Label   string
	Size    int // number of components; 0 and 1 both mean scalar
	Default []float64
	Unit    UnitKind
	Integer bool
	Labels  []string // per-component labels, e.g. "x", "y"
}

// Components returns the number of components of the property.
func (d PropertyDescriptor) Components() int {
	if d.Size < 1 {
		return 1
	}
	return d.Size
}

// DefaultAt returns the declared default of component i, or 0.
func (d PropertyDescriptor) DefaultAt(i int) float64 {
	if i >= 0 && i < len(d.Default) {
		return d.Default[i]
	}
	return 0
}

// ComponentLabel returns the display label of component i.
func (d PropertyDescriptor) ComponentLabel(i int) string {
	if i >= 0 && i < len(d.Labels) {
		return d.Labels[i]
	}
	if d.Components() == 1 {
		return d.DisplayName()
	}
	return string(rune('x' + i%3))
}

// DisplayName returns Label, falling back to Name.
func (d PropertyDescriptor) DisplayName() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

// Property is the live value of a PropertyDescriptor inside one operator run.
type Property struct {
	desc   PropertyDescriptor
	values []float64
	set    bool
}

// NewProperty creates a property holding its defaults.
func NewProperty(desc PropertyDescriptor) *Property {
	p := &Property{desc: desc}
	p.Reset()
	return p
}

// Descriptor returns the declaration of the property.
func (p *Property) Descriptor() PropertyDescriptor { return p.desc }

// Name returns the property name.
func (p *Property) Name() string { return p.desc.Name }

// IsSet reports whether a value was assigned since the last Reset.
func (p *Property) IsSet() bool { return p.set }

// Values returns a copy of the current values.
func (p *Property) Values() []float64 {
	return append([]float64(nil), p.values...)
}

// Value returns component i, or 0 when out of range.
func (p *Property) Value(i int) float64 {
	if i < 0 || i >= len(p.values) {
		return 0
	}
	return p.values[i]
}

// Float returns the first component.
func (p *Property) Float() float64 { return p.Value(0) }

// Vec2 returns the first two components.
func (p *Property) Vec2() Vec2 { return Vec2{p.Value(0), p.Value(1)} }

// Set assigns values; missing components keep their defaults and integer
// properties are rounded.
func (p *Property) Set(values []float64) {
	n := p.desc.Components()
	for i := 0; i < n; i++ {
		v := p.desc.DefaultAt(i)
		if i < len(values) {
			v = values[i]
		}
		if p.desc.Integer {
			v = math.Round(v)
		}
		p.values[i] = v
	}
	p.set = true
}

// Reset restores the defaults and clears the set flag.
func (p *Property) Reset() {
	n := p.desc.Components()
	p.values = make([]float64, n)
	for i := range p.values {
		p.values[i] = p.desc.DefaultAt(i)
	}
	p.set = false
}
