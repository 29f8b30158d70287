// Package sketch is a small 2D parametric sketch model (points, lines, circles,
// mesh objects and constraints) that hosts Stencil operators.
package sketch

import (
	"fmt"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/jinzhu/copier"
)

// Domain pointer kinds used by the sketch.
const (
	KindPoint  = domain.PointerEntity
	KindLine   = domain.PointerEntity + 1
	KindCircle = domain.PointerEntity + 2
)

func init() {
	domain.RegisterKindName(KindPoint, "point")
	domain.RegisterKindName(KindLine, "line")
	domain.RegisterKindName(KindCircle, "circle")
}

// Point is a 2D point.
type Point struct {
	Name string      `json:"name" yaml:"name"`
	Co   domain.Vec2 `json:"co" yaml:"co"`
}

// Line is a segment between two points.
type Line struct {
	Name string `json:"name" yaml:"name"`
	P1   string `json:"p1" yaml:"p1"`
	P2   string `json:"p2" yaml:"p2"`
}

// Circle is defined by a center point and a radius.
type Circle struct {
	Name   string  `json:"name" yaml:"name"`
	Center string  `json:"center" yaml:"center"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Mesh is a polygonal object whose vertices, edges and faces can be picked.
type Mesh struct {
	Name  string        `json:"name" yaml:"name"`
	Verts []domain.Vec2 `json:"verts" yaml:"verts"`
	Edges [][2]int      `json:"edges,omitempty" yaml:"edges,omitempty"`
	Faces [][]int       `json:"faces,omitempty" yaml:"faces,omitempty"`
}

// ConstraintType names a geometric constraint.
type ConstraintType string

const (
	Distance   ConstraintType = "distance"
	Coincident ConstraintType = "coincident"
	Horizontal ConstraintType = "horizontal"
	Vertical   ConstraintType = "vertical"
)

// Constraint binds entities by name.
type Constraint struct {
	Name     string         `json:"name" yaml:"name"`
	Type     ConstraintType `json:"type" yaml:"type"`
	Entities []string       `json:"entities" yaml:"entities"`
	Value    float64        `json:"value,omitempty" yaml:"value,omitempty"`
}

// Document is the whole sketch. Element names are derived from a per-document
// sequence, so replaying the same additions on a restored document yields the same names.
type Document struct {
	Points      []Point                  `json:"points" yaml:"points"`
	Lines       []Line                   `json:"lines" yaml:"lines"`
	Circles     []Circle                 `json:"circles" yaml:"circles"`
	Meshes      []Mesh                   `json:"meshes,omitempty" yaml:"meshes,omitempty"`
	Constraints []Constraint             `json:"constraints" yaml:"constraints"`
	Selected    []domain.ImplicitPointer `json:"selected,omitempty" yaml:"selected,omitempty"`
	Seq         int                      `json:"seq" yaml:"seq"`
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

func (d *Document) nextName(prefix string) string {
	d.Seq++
	return fmt.Sprintf("%s.%03d", prefix, d.Seq)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{}
	if err := copier.CopyWithOption(out, d, copier.Option{DeepCopy: true}); err != nil {
		// copier only fails on mismatched types, which cannot happen for identical structs.
		panic(fmt.Sprintf("sketch: clone document: %v", err))
	}
	return out
}

// AddPoint adds a point and returns its name.
func (d *Document) AddPoint(co domain.Vec2) string {
	name := d.nextName("Point")
	d.Points = append(d.Points, Point{Name: name, Co: co})
	return name
}

// AddLine adds a segment between two existing points.
func (d *Document) AddLine(p1, p2 string) (string, error) {
	if _, ok := d.Point(p1); !ok {
		return "", fmt.Errorf("line start %q: %w", p1, domain.ErrUnknownElement)
	}
	if _, ok := d.Point(p2); !ok {
		return "", fmt.Errorf("line end %q: %w", p2, domain.ErrUnknownElement)
	}
	name := d.nextName("Line")
	d.Lines = append(d.Lines, Line{Name: name, P1: p1, P2: p2})
	return name, nil
}

// AddCircle adds a circle around an existing point.
func (d *Document) AddCircle(center string, radius float64) (string, error) {
	if _, ok := d.Point(center); !ok {
		return "", fmt.Errorf("circle center %q: %w", center, domain.ErrUnknownElement)
	}
	name := d.nextName("Circle")
	d.Circles = append(d.Circles, Circle{Name: name, Center: center, Radius: radius})
	return name, nil
}

// AddMesh adds a mesh object.
func (d *Document) AddMesh(m Mesh) string {
	if m.Name == "" {
		m.Name = d.nextName("Mesh")
	}
	d.Meshes = append(d.Meshes, m)
	return m.Name
}

// AddConstraint adds a constraint between existing entities.
func (d *Document) AddConstraint(t ConstraintType, value float64, entities ...string) (string, error) {
	for _, e := range entities {
		if !d.Has(e) {
			return "", fmt.Errorf("constraint %s on %q: %w", t, e, domain.ErrUnknownElement)
		}
	}
	name := d.nextName("Constraint")
	d.Constraints = append(d.Constraints, Constraint{
		Name:     name,
		Type:     t,
		Entities: append([]string(nil), entities...),
		Value:    value,
	})
	return name, nil
}

// Point returns the named point.
func (d *Document) Point(name string) (*Point, bool) {
	for i := range d.Points {
		if d.Points[i].Name == name {
			return &d.Points[i], true
		}
	}
	return nil, false
}

// Line returns the named line.
func (d *Document) Line(name string) (*Line, bool) {
	for i := range d.Lines {
		if d.Lines[i].Name == name {
			return &d.Lines[i], true
		}
	}
	return nil, false
}

// Circle returns the named circle.
func (d *Document) Circle(name string) (*Circle, bool) {
	for i := range d.Circles {
		if d.Circles[i].Name == name {
			return &d.Circles[i], true
		}
	}
	return nil, false
}

// Mesh returns the named mesh.
func (d *Document) Mesh(name string) (*Mesh, bool) {
	for i := range d.Meshes {
		if d.Meshes[i].Name == name {
			return &d.Meshes[i], true
		}
	}
	return nil, false
}

// Has reports whether any entity carries the given name.
func (d *Document) Has(name string) bool {
	if _, ok := d.Point(name); ok {
		return true
	}
	if _, ok := d.Line(name); ok {
		return true
	}
	if _, ok := d.Circle(name); ok {
		return true
	}
	_, ok := d.Mesh(name)
	return ok
}

// Select appends a pointer to the selection.
func (d *Document) Select(p domain.ImplicitPointer) {
	d.Selected = append(d.Selected, p)
}

// ClearSelection empties the selection.
func (d *Document) ClearSelection() {
	d.Selected = nil
}

// Stats counts the elements of the document.
type Stats struct {
	Points      int `json:"points"`
	Lines       int `json:"lines"`
	Circles     int `json:"circles"`
	Constraints int `json:"constraints"`
}

// Stats returns element counts.
func (d *Document) Stats() Stats {
	return Stats{
		Points:      len(d.Points),
		Lines:       len(d.Lines),
		Circles:     len(d.Circles),
		Constraints: len(d.Constraints),
	}
}
