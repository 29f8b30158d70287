package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
)

// StatusText is the live status line: the active state and, while typing,
// every component buffer with a "|" after the one receiving keys.
func (o *Operator) StatusText() string {
	st := o.State()
	var b strings.Builder
	b.WriteString(o.tool.DisplayName())
	b.WriteString(": ")
	b.WriteString(st.Name)
	if desc := st.Description.Resolve(o); desc != "" {
		b.WriteString(" - ")
		b.WriteString(desc)
	}

	d := o.rs.current()
	if !d.numeric {
		return b.String()
	}
	prop := o.StateProperty(o.rs.index)
	if prop == nil {
		return b.String()
	}
	desc := prop.Descriptor()
	parts := make([]string, desc.Components())
	for i := range parts {
		text := d.buffer.Text(i)
		if i == o.rs.substate {
			text += "|"
		}
		parts[i] = desc.ComponentLabel(i) + ": " + text
	}
	b.WriteString("  [")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("]")
	return b.String()
}

// Description is the tool tooltip including the configured key binding.
func (o *Operator) Description() string {
	return Describe(o.tool, o.keymapHint)
}

// Describe builds a tooltip: key hint, docstring and one line per state.
func Describe(t *domain.Tool, hint string) string {
	var lines []string
	if hint != "" {
		lines = append(lines, "Shortcut: "+hint)
	}
	if t.Doc != "" {
		lines = append(lines, t.Doc)
	}
	for i, st := range t.Table.States() {
		line := fmt.Sprintf("%d. %s", i+1, st.Name)
		if d := st.Description.Resolve(nil); d != "" {
			line += ": " + d
		}
		if st.HasPointer() {
			line += " (" + st.Pointer.String() + ")"
		}
		if st.Optional {
			line += " [optional]"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
