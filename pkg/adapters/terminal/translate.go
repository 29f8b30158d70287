package terminal

import (
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/gdamore/tcell/v2"
)

// DefaultCellSize is the screen-space size of one terminal cell.
var DefaultCellSize = domain.Vec2{X: 8, Y: 16}

// Translator converts tcell events into operator events. It remembers the
// held buttons to report releases, and the last pointer cell so key events
// carry a position.
type Translator struct {
	CellSize domain.Vec2

	buttons tcell.ButtonMask
	last    domain.Vec2
}

// NewTranslator creates a Translator with DefaultCellSize.
func NewTranslator() *Translator {
	return &Translator{CellSize: DefaultCellSize}
}

// CellCenter returns the screen position of the center of a cell.
func (t *Translator) CellCenter(col, row int) domain.Vec2 {
	return domain.Vec2{
		X: (float64(col) + 0.5) * t.CellSize.X,
		Y: (float64(row) + 0.5) * t.CellSize.Y,
	}
}

// Cell returns the cell containing a screen position.
func (t *Translator) Cell(p domain.Vec2) (col, row int) {
	return floorDiv(p.X, t.CellSize.X), floorDiv(p.Y, t.CellSize.Y)
}

func floorDiv(v, size float64) int {
	q := v / size
	if q < 0 {
		return int(q) - 1
	}
	return int(q)
}

// Last returns the last pointer position seen.
func (t *Translator) Last() domain.Vec2 { return t.last }

func mods(m tcell.ModMask) domain.Modifier {
	var out domain.Modifier
	if m&tcell.ModShift != 0 {
		out |= domain.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= domain.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= domain.ModAlt
	}
	return out
}

var keys = map[tcell.Key]domain.Key{
	tcell.KeyEnter:      domain.KeyEnter,
	tcell.KeyEscape:     domain.KeyEscape,
	tcell.KeyTab:        domain.KeyTab,
	tcell.KeyBackspace:  domain.KeyBackspace,
	tcell.KeyBackspace2: domain.KeyBackspace,
	tcell.KeyDelete:     domain.KeyDelete,
}

var buttons = []struct {
	mask   tcell.ButtonMask
	button domain.Button
}{
	{tcell.Button1, domain.ButtonLeft},
	{tcell.Button2, domain.ButtonRight},
	{tcell.Button3, domain.ButtonMiddle},
}

// Translate converts one tcell event. It reports false for events operators
// do not consume, such as resizes or unmapped keys. A mouse event that both
// moves and changes buttons yields the button change.
func (t *Translator) Translate(ev tcell.Event) (domain.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		m := mods(ev.Modifiers())
		if ev.Key() == tcell.KeyRune {
			out := domain.RunePress(ev.Rune(), t.last)
			out.Mods = m
			return out, true
		}
		k, ok := keys[ev.Key()]
		if !ok {
			return domain.Event{}, false
		}
		out := domain.KeyPress(k, t.last)
		out.Mods = m
		return out, true

	case *tcell.EventMouse:
		col, row := ev.Position()
		pos := t.CellCenter(col, row)
		moved := pos != t.last
		t.last = pos
		m := mods(ev.Modifiers())

		held := ev.Buttons()
		switch {
		case held&tcell.WheelUp != 0:
			return domain.Event{Type: domain.EventWheel, Pos: pos, Delta: 1, Mods: m}, true
		case held&tcell.WheelDown != 0:
			return domain.Event{Type: domain.EventWheel, Pos: pos, Delta: -1, Mods: m}, true
		}

		prev := t.buttons
		t.buttons = held & (tcell.Button1 | tcell.Button2 | tcell.Button3)
		for _, b := range buttons {
			switch {
			case t.buttons&b.mask != 0 && prev&b.mask == 0:
				out := domain.ButtonPress(b.button, pos)
				out.Mods = m
				return out, true
			case t.buttons&b.mask == 0 && prev&b.mask != 0:
				out := domain.ButtonPress(b.button, pos)
				out.Action = domain.ActionRelease
				out.Mods = m
				return out, true
			}
		}
		if !moved {
			return domain.Event{}, false
		}
		out := domain.MouseMove(pos)
		out.Mods = m
		return out, true
	}
	return domain.Event{}, false
}
