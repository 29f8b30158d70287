package terminal

import (
	"math"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/gdamore/tcell/v2"
)

var (
	styleLine     = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	styleCircle   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleMesh     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePoint    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMessage  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
)

const (
	glyphPoint  = 'o'
	glyphLine   = '·'
	glyphCircle = '*'
	glyphMesh   = '+'
)

// Frame is everything drawn in one refresh.
type Frame struct {
	Doc     *sketch.Document
	View    sketch.Viewport
	Status  string // operator status, shown on the last row
	Message string // last outcome, shown when no status is set
}

// Renderer draws documents on a tcell screen.
type Renderer struct {
	screen tcell.Screen
	tr     *Translator
}

// NewRenderer creates a Renderer sharing the translator's cell size.
func NewRenderer(screen tcell.Screen, tr *Translator) *Renderer {
	return &Renderer{screen: screen, tr: tr}
}

// Draw clears the screen and renders the frame. It does not call Show.
func (r *Renderer) Draw(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()
	canvasH := h - 1

	selected := make(map[string]bool, len(f.Doc.Selected))
	for _, p := range f.Doc.Selected {
		selected[p.Name] = true
	}
	pick := func(name string, base tcell.Style) tcell.Style {
		if selected[name] {
			return styleSelected
		}
		return base
	}
	plot := func(p domain.Vec2, glyph rune, style tcell.Style) {
		col, row := r.tr.Cell(f.View.ToScreen(p))
		if col < 0 || row < 0 || col >= w || row >= canvasH {
			return
		}
		r.screen.SetContent(col, row, glyph, nil, style)
	}

	for _, m := range f.Doc.Meshes {
		style := pick(m.Name, styleMesh)
		for _, e := range m.Edges {
			if e[0] < len(m.Verts) && e[1] < len(m.Verts) {
				r.segment(f.View, m.Verts[e[0]], m.Verts[e[1]], glyphMesh, style, w, canvasH)
			}
		}
	}
	for _, c := range f.Doc.Circles {
		center, ok := f.Doc.Point(c.Center)
		if !ok {
			continue
		}
		style := pick(c.Name, styleCircle)
		steps := int(math.Max(16, c.Radius*f.View.ToScreen(domain.Vec2{X: 1}).Sub(f.View.ToScreen(domain.Vec2{})).Len()))
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / float64(steps)
			plot(center.Co.Add(domain.Vec2{X: math.Cos(a), Y: math.Sin(a)}.Scale(c.Radius)), glyphCircle, style)
		}
	}
	for _, l := range f.Doc.Lines {
		p1, ok1 := f.Doc.Point(l.P1)
		p2, ok2 := f.Doc.Point(l.P2)
		if ok1 && ok2 {
			r.segment(f.View, p1.Co, p2.Co, glyphLine, pick(l.Name, styleLine), w, canvasH)
		}
	}
	for _, p := range f.Doc.Points {
		plot(p.Co, glyphPoint, pick(p.Name, stylePoint))
	}

	text, style := f.Status, styleStatus
	if text == "" {
		text, style = f.Message, styleMessage
	}
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, h-1, ' ', nil, style)
	}
	r.text(0, h-1, text, style)
}

// segment plots a line between two sketch positions with Bresenham's algorithm.
func (r *Renderer) segment(view sketch.Viewport, a, b domain.Vec2, glyph rune, style tcell.Style, w, h int) {
	x0, y0 := r.tr.Cell(view.ToScreen(a))
	x1, y1 := r.tr.Cell(view.ToScreen(b))
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if x0 >= 0 && y0 >= 0 && x0 < w && y0 < h {
			r.screen.SetContent(x0, y0, glyph, nil, style)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, c := range s {
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
