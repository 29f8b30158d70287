package sketch

import (
	"math"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/units"
)

// DefaultTolerance is the default pick radius, in screen units.
const DefaultTolerance = 8.0

// Viewport maps screen coordinates to sketch coordinates.
type Viewport struct {
	Offset domain.Vec2 `json:"offset" yaml:"offset" mapstructure:"offset"`
	Zoom   float64     `json:"zoom" yaml:"zoom" mapstructure:"zoom"`
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ToWorld converts a screen position to sketch space.
func (v Viewport) ToWorld(p domain.Vec2) domain.Vec2 {
	return p.Sub(v.Offset).Scale(1 / v.zoom())
}

// ToScreen converts a sketch position to screen space.
func (v Viewport) ToScreen(p domain.Vec2) domain.Vec2 {
	return p.Scale(v.zoom()).Add(v.Offset)
}

// MeshElement is the live handle of a vertex, edge or face.
type MeshElement struct {
	Mesh  *Mesh
	Kind  domain.PointerKind
	Index int
}

// Scene wraps a Document with everything an operator needs from its host:
// picking, resolution, selection, undo, status line and units.
// A Scene is not safe for concurrent use.
type Scene struct {
	View      Viewport
	Tolerance float64
	Units     units.System
	Solver    Solver

	doc     *Document
	history *History
	status  string
	cursor  domain.CursorKind
}

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithUnits sets the unit system used to parse typed values.
func WithUnits(sys units.System) SceneOption {
	return func(s *Scene) { s.Units = sys }
}

// WithTolerance sets the pick radius.
func WithTolerance(t float64) SceneOption {
	return func(s *Scene) {
		if t > 0 {
			s.Tolerance = t
		}
	}
}

// WithViewport sets the screen mapping.
func WithViewport(v Viewport) SceneOption {
	return func(s *Scene) { s.View = v }
}

// WithHistoryLimit bounds the undo history.
func WithHistoryLimit(n int) SceneOption {
	return func(s *Scene) { s.history.limit = n }
}

// NewScene wraps doc; a nil doc starts an empty sketch.
func NewScene(doc *Document, opts ...SceneOption) *Scene {
	if doc == nil {
		doc = NewDocument()
	}
	s := &Scene{
		Tolerance: DefaultTolerance,
		Units:     units.Default(),
		Solver:    DirectSolver{},
		doc:       doc,
		history:   NewHistory(doc, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document returns the live document. The pointer changes after undo.
func (s *Scene) Document() *Document { return s.doc }

// Reset replaces the document and starts a fresh history.
func (s *Scene) Reset(doc *Document) {
	if doc == nil {
		doc = NewDocument()
	}
	s.doc = doc
	s.history = NewHistory(doc, s.history.limit)
}

// History returns the undo history.
func (s *Scene) History() *History { return s.history }

// ToWorld converts a screen position to sketch space.
func (s *Scene) ToWorld(p domain.Vec2) domain.Vec2 { return s.View.ToWorld(p) }

// Solve runs the solver over the document.
func (s *Scene) Solve() bool {
	if s.Solver == nil {
		return true
	}
	return s.Solver.Solve(s.doc)
}

// PushCheckpoint records the document in the history.
func (s *Scene) PushCheckpoint(label string) {
	s.history.Push(label, s.doc)
}

// Undo restores the previous checkpoint.
func (s *Scene) Undo() {
	if doc, ok := s.history.Undo(); ok {
		s.doc = doc
	}
}

// Redo re-applies the next checkpoint.
func (s *Scene) Redo() bool {
	doc, ok := s.history.Redo()
	if ok {
		s.doc = doc
	}
	return ok
}

// Select adds p to the selection as its own undo step, so rolling back a
// later tool run keeps it.
func (s *Scene) Select(p domain.ImplicitPointer) {
	s.doc.Select(p)
	s.PushCheckpoint("Select")
}

// ClearSelection empties the selection as its own undo step.
func (s *Scene) ClearSelection() {
	s.doc.ClearSelection()
	s.PushCheckpoint("Deselect")
}

// SetStatus sets the status line.
func (s *Scene) SetStatus(text string) { s.status = text }

// Status returns the status line.
func (s *Scene) Status() string { return s.status }

// SetCursor sets the cursor shape.
func (s *Scene) SetCursor(c domain.CursorKind) { s.cursor = c }

// Cursor returns the cursor shape.
func (s *Scene) Cursor() domain.CursorKind { return s.cursor }

// ParseWithUnit parses typed text in the scene's unit system.
func (s *Scene) ParseWithUnit(text string, kind domain.UnitKind) (float64, error) {
	return s.Units.ParseWithUnit(text, kind)
}

// Selection returns the document selection.
func (s *Scene) Selection() []domain.ImplicitPointer {
	return append([]domain.ImplicitPointer(nil), s.doc.Selected...)
}

// Resolve returns the live element a pointer refers to.
func (s *Scene) Resolve(p domain.ImplicitPointer) (any, bool) {
	switch p.Kind {
	case KindPoint:
		return s.doc.Point(p.Name)
	case KindLine:
		return s.doc.Line(p.Name)
	case KindCircle:
		return s.doc.Circle(p.Name)
	case domain.PointerObject:
		return s.doc.Mesh(p.Name)
	case domain.PointerVertex, domain.PointerEdge, domain.PointerFace:
		m, ok := s.doc.Mesh(p.Name)
		if !ok || p.Index < 0 || p.Index >= meshCount(m, p.Kind) {
			return nil, false
		}
		return &MeshElement{Mesh: m, Kind: p.Kind, Index: p.Index}, true
	}
	return nil, false
}

func meshCount(m *Mesh, k domain.PointerKind) int {
	switch k {
	case domain.PointerVertex:
		return len(m.Verts)
	case domain.PointerEdge:
		return len(m.Edges)
	case domain.PointerFace:
		return len(m.Faces)
	}
	return 0
}

// Picking prefers point-like elements, then curves, then areas.
const (
	tierPoint = iota
	tierCurve
	tierArea
	tierCount
)

type candidate struct {
	ptr  domain.ImplicitPointer
	dist float64
}

type picker struct {
	tiers  [tierCount]candidate
	ignore func(domain.ImplicitPointer) bool
}

func newPicker(tolerance float64, ignore func(domain.ImplicitPointer) bool) *picker {
	pk := &picker{ignore: ignore}
	for i := range pk.tiers {
		pk.tiers[i] = candidate{ptr: domain.NoPointer, dist: tolerance}
	}
	return pk
}

func (pk *picker) offer(tier int, p domain.ImplicitPointer, d float64) {
	c := &pk.tiers[tier]
	if d >= c.dist {
		return
	}
	if pk.ignore != nil && pk.ignore(p) {
		return
	}
	c.ptr, c.dist = p, d
}

func (pk *picker) best() (domain.ImplicitPointer, bool) {
	for _, c := range pk.tiers {
		if !c.ptr.IsZero() {
			return c.ptr, true
		}
	}
	return domain.NoPointer, false
}

// PickNearest returns the element of an allowed kind closest to coords
// (screen space), within the scene tolerance.
func (s *Scene) PickNearest(coords domain.Vec2, kinds domain.KindSet, ignore func(domain.ImplicitPointer) bool) (domain.ImplicitPointer, bool) {
	pk := newPicker(s.Tolerance, ignore)
	at := func(p domain.Vec2) domain.Vec2 { return s.View.ToScreen(p) }

	if kinds.Has(KindPoint) {
		for _, p := range s.doc.Points {
			pk.offer(tierPoint, domain.EntityPointer(KindPoint, p.Name), coords.Dist(at(p.Co)))
		}
	}
	if kinds.Has(KindLine) {
		for _, l := range s.doc.Lines {
			a, okA := s.doc.Point(l.P1)
			b, okB := s.doc.Point(l.P2)
			if !okA || !okB {
				continue
			}
			pk.offer(tierCurve, domain.EntityPointer(KindLine, l.Name), SegmentDistance(coords, at(a.Co), at(b.Co)))
		}
	}
	if kinds.Has(KindCircle) {
		for _, c := range s.doc.Circles {
			ctr, ok := s.doc.Point(c.Center)
			if !ok {
				continue
			}
			r := c.Radius * s.View.zoom()
			pk.offer(tierCurve, domain.EntityPointer(KindCircle, c.Name), math.Abs(coords.Dist(at(ctr.Co))-r))
		}
	}
	for i := range s.doc.Meshes {
		s.pickMesh(&s.doc.Meshes[i], coords, kinds, pk)
	}
	return pk.best()
}

func (s *Scene) pickMesh(m *Mesh, coords domain.Vec2, kinds domain.KindSet, pk *picker) {
	at := func(i int) domain.Vec2 { return s.View.ToScreen(m.Verts[i]) }
	objDist := math.Inf(1)

	for i := range m.Verts {
		d := coords.Dist(at(i))
		objDist = math.Min(objDist, d)
		if kinds.Has(domain.PointerVertex) {
			pk.offer(tierPoint, domain.ElementPointer(domain.PointerVertex, m.Name, i), d)
		}
	}
	for i, e := range m.Edges {
		if !validIndex(m, e[0]) || !validIndex(m, e[1]) {
			continue
		}
		d := SegmentDistance(coords, at(e[0]), at(e[1]))
		objDist = math.Min(objDist, d)
		if kinds.Has(domain.PointerEdge) {
			pk.offer(tierCurve, domain.ElementPointer(domain.PointerEdge, m.Name, i), d)
		}
	}
	for i, f := range m.Faces {
		poly := make([]domain.Vec2, 0, len(f))
		for _, vi := range f {
			if validIndex(m, vi) {
				poly = append(poly, at(vi))
			}
		}
		if !insidePolygon(coords, poly) {
			continue
		}
		objDist = 0
		if kinds.Has(domain.PointerFace) {
			pk.offer(tierArea, domain.ElementPointer(domain.PointerFace, m.Name, i), 0)
		}
	}
	if kinds.Has(domain.PointerObject) {
		pk.offer(tierArea, domain.EntityPointer(domain.PointerObject, m.Name), objDist)
	}
}

func validIndex(m *Mesh, i int) bool { return i >= 0 && i < len(m.Verts) }

func insidePolygon(p domain.Vec2, poly []domain.Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	in := false
	j := len(poly) - 1
	for i := range poly {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
		j = i
	}
	return in
}
