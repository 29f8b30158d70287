package domain

import "math"

// Vec2 is a 2D coordinate, used both for screen positions and plane coordinates.
type Vec2 struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v*f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// EventType discriminates raw input events.
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouseMove
	EventMouseButton
	EventWheel
	EventTrackpad // pan/zoom gestures
)

var eventTypeNames = [...]string{"none", "key", "move", "button", "wheel", "trackpad"}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// ParseEventType resolves the name produced by String.
func ParseEventType(s string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == s {
			return EventType(i), true
		}
	}
	return EventNone, false
}

// Action is the press state carried by key and button events.
type Action uint8

const (
	ActionNone Action = iota
	ActionPress
	ActionRelease
)

func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	}
	return "none"
}

// Key identifies a non-printable key, or KeyRune for printable characters.
type Key uint16

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyNumpadEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyNumpadPeriod
	KeyNumpadMinus
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
)

var keyNames = map[Key]string{
	KeyNone:         "none",
	KeyRune:         "rune",
	KeyEnter:        "enter",
	KeyNumpadEnter:  "numpad_enter",
	KeyEscape:       "esc",
	KeyTab:          "tab",
	KeyBackspace:    "backspace",
	KeyDelete:       "delete",
	KeyNumpadPeriod: "numpad_period",
	KeyNumpadMinus:  "numpad_minus",
	KeyNumpad0:      "numpad_0",
	KeyNumpad1:      "numpad_1",
	KeyNumpad2:      "numpad_2",
	KeyNumpad3:      "numpad_3",
	KeyNumpad4:      "numpad_4",
	KeyNumpad5:      "numpad_5",
	KeyNumpad6:      "numpad_6",
	KeyNumpad7:      "numpad_7",
	KeyNumpad8:      "numpad_8",
	KeyNumpad9:      "numpad_9",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKey resolves the name produced by String.
func ParseKey(s string) (Key, bool) {
	for k, n := range keyNames {
		if n == s {
			return k, true
		}
	}
	return KeyNone, false
}

// Button identifies a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

var buttonNames = [...]string{"none", "left", "right", "middle"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "unknown"
}

// ParseButton resolves the name produced by String.
func ParseButton(s string) (Button, bool) {
	for i, n := range buttonNames {
		if n == s {
			return Button(i), true
		}
	}
	return ButtonNone, false
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Event is a raw input event as delivered by the host.
// Pos is the cursor position in screen space. Operators only read it from
// pointer events; key events may leave it zero.
type Event struct {
	Type   EventType
	Action Action
	Key    Key
	Rune   rune
	Button Button
	Mods   Modifier
	Pos    Vec2
	Delta  float64 // wheel/trackpad amount
}

// IsPress reports whether the event is a press of a key or button.
func (e Event) IsPress() bool {
	return e.Action == ActionPress
}

// KeyPress builds a key press event for a named key.
func KeyPress(k Key, pos Vec2) Event {
	return Event{Type: EventKey, Action: ActionPress, Key: k, Pos: pos}
}

// RunePress builds a key press event for a printable character.
func RunePress(r rune, pos Vec2) Event {
	return Event{Type: EventKey, Action: ActionPress, Key: KeyRune, Rune: r, Pos: pos}
}

// ButtonPress builds a mouse button press event.
func ButtonPress(b Button, pos Vec2) Event {
	return Event{Type: EventMouseButton, Action: ActionPress, Button: b, Pos: pos}
}

// MouseMove builds a pointer movement event.
func MouseMove(pos Vec2) Event {
	return Event{Type: EventMouseMove, Pos: pos}
}
