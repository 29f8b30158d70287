package runner

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// wireCommand is the loosely typed form shared by the text and JSON handlers.
type wireCommand struct {
	Cmd        string                            `mapstructure:"cmd"`
	Tool       string                            `mapstructure:"tool"`
	X          *float64                          `mapstructure:"x"`
	Y          *float64                          `mapstructure:"y"`
	Button     string                            `mapstructure:"button"`
	Key        string                            `mapstructure:"key"`
	Text       string                            `mapstructure:"text"`
	Delta      float64                           `mapstructure:"delta"`
	Shift      bool                              `mapstructure:"shift"`
	Ctrl       bool                              `mapstructure:"ctrl"`
	Kind       domain.PointerKind                `mapstructure:"kind"`
	Name       string                            `mapstructure:"name"`
	Index      *int                              `mapstructure:"index"`
	Properties map[string][]float64              `mapstructure:"properties"`
	Pointers   map[string]domain.ImplicitPointer `mapstructure:"pointers"`
}

// kindHook decodes pointer kinds given by name.
func kindHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(domain.PointerKind(0)) || from.Kind() != reflect.String {
		return data, nil
	}
	k, ok := domain.ParseKind(data.(string))
	if !ok {
		return nil, fmt.Errorf("unknown pointer kind %q", data)
	}
	return k, nil
}

// decodeWire converts a generic map into a wireCommand. Pointers default to no sub-index.
func decodeWire(raw map[string]any) (wireCommand, error) {
	if ptrs, ok := raw["pointers"].(map[string]any); ok {
		for _, v := range ptrs {
			if m, ok := v.(map[string]any); ok {
				if _, has := m["index"]; !has {
					m["index"] = -1
				}
			}
		}
	}

	var w wireCommand
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       kindHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &w,
	})
	if err != nil {
		return w, err
	}
	if err := dec.Decode(raw); err != nil {
		return w, fmt.Errorf("decode command: %w", err)
	}
	return w, nil
}

// cursor tracks the last pointer position so key events carry it.
type cursor struct {
	pos domain.Vec2
}

func (c *cursor) at(w wireCommand) domain.Vec2 {
	if w.X != nil {
		c.pos.X = *w.X
	}
	if w.Y != nil {
		c.pos.Y = *w.Y
	}
	return c.pos
}

func (w wireCommand) mods() domain.Modifier {
	var m domain.Modifier
	if w.Shift {
		m |= domain.ModShift
	}
	if w.Ctrl {
		m |= domain.ModCtrl
	}
	return m
}

func keyEvent(name string, pos domain.Vec2) (domain.Event, error) {
	if r := []rune(name); len(r) == 1 {
		return domain.RunePress(r[0], pos), nil
	}
	k, ok := domain.ParseKey(strings.ToLower(name))
	if !ok || k == domain.KeyRune || k == domain.KeyNone {
		return domain.Event{}, fmt.Errorf("unknown key %q", name)
	}
	return domain.KeyPress(k, pos), nil
}

// commands expands a wire command into runner commands.
func (w wireCommand) commands(c *cursor) ([]Command, error) {
	event := func(ev domain.Event) []Command {
		ev.Mods |= w.mods()
		return []Command{{Kind: CommandEvent, Event: ev}}
	}

	switch strings.ToLower(w.Cmd) {
	case "tool":
		if w.Tool == "" {
			return nil, fmt.Errorf("tool: missing id")
		}
		return []Command{{Kind: CommandTool, Tool: w.Tool}}, nil
	case "move":
		return event(domain.MouseMove(c.at(w))), nil
	case "click", "release":
		b := domain.ButtonLeft
		if w.Button != "" {
			var ok bool
			if b, ok = domain.ParseButton(w.Button); !ok {
				return nil, fmt.Errorf("unknown button %q", w.Button)
			}
		}
		ev := domain.ButtonPress(b, c.at(w))
		if strings.EqualFold(w.Cmd, "release") {
			ev.Action = domain.ActionRelease
		}
		return event(ev), nil
	case "key":
		ev, err := keyEvent(w.Key, c.at(w))
		if err != nil {
			return nil, err
		}
		return event(ev), nil
	case "type":
		var out []Command
		for _, r := range w.Text {
			out = append(out, event(domain.RunePress(r, c.pos))...)
		}
		return out, nil
	case "tab", "enter", "esc", "backspace", "delete":
		ev, err := keyEvent(w.Cmd, c.pos)
		if err != nil {
			return nil, err
		}
		return event(ev), nil
	case "wheel":
		return event(domain.Event{Type: domain.EventWheel, Pos: c.at(w), Delta: w.Delta}), nil
	case "select":
		idx := -1
		if w.Index != nil {
			idx = *w.Index
		}
		if w.Kind == domain.PointerNone || w.Name == "" {
			return nil, fmt.Errorf("select: kind and name are required")
		}
		return []Command{{Kind: CommandSelect, Pointer: domain.ImplicitPointer{Kind: w.Kind, Name: w.Name, Index: idx}}}, nil
	case "exec", "execute":
		if w.Tool == "" {
			return nil, fmt.Errorf("exec: missing tool id")
		}
		return []Command{{Kind: CommandExecute, Tool: w.Tool, Values: runtime.Values{
			Properties: w.Properties,
			Pointers:   w.Pointers,
		}}}, nil
	case "cancel":
		return []Command{{Kind: CommandCancel}}, nil
	}
	return nil, fmt.Errorf("unknown command %q", w.Cmd)
}

// Decode expands one command object, as read from JSON, into runner commands.
// Coordinates left out default to the origin.
func Decode(raw map[string]any) ([]Command, error) {
	w, err := decodeWire(raw)
	if err != nil {
		return nil, err
	}
	return w.commands(&cursor{})
}
