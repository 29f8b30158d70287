package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
)

// Overlay marks the progress of a run on the graph.
type Overlay struct {
	Visited []string // state names already resolved
	Current string   // active state name
}

// OverlayFromReport marks every state before the report's state as visited.
func OverlayFromReport(t *domain.Tool, rep domain.Report) *Overlay {
	o := &Overlay{Current: rep.StateName}
	for i, st := range t.Table.States() {
		if i >= rep.StateIndex {
			break
		}
		o.Visited = append(o.Visited, st.Name)
	}
	return o
}

// GenerateMermaid renders a tool's state table as a Mermaid flowchart.
// Shapes follow the state kind:
//   - invoke and end: ((Circle))
//   - picking states: [/Parallelogram/]
//   - computed states: [[Subroutine]]
//   - typed property states: [Rectangle]
//
// Optional states get a dashed bypass edge, and continuous drawing loops
// from the main step back to the second state.
func GenerateMermaid(t *domain.Tool, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    invoke((\"invoke\"))\n")

	states := t.Table.States()
	ids := make([]string, len(states))
	for i, st := range states {
		ids[i] = fmt.Sprintf("s%d_%s", i, sanitizeMermaidID(st.Name))

		opener, closer := "[", "]"
		switch {
		case st.NoEvent:
			opener, closer = "[[", "]]"
		case st.HasPointer():
			opener, closer = "[/", "/]"
		}
		label := st.Name
		if st.HasPointer() {
			label += " <br/> " + st.Pointer.String()
		}
		if p := st.Property.Resolve(nil); p != "" {
			label += " <br/> = " + p
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", ids[i], opener, escape(label), closer)
	}
	sb.WriteString("    main[[\"main\"]]\n")
	sb.WriteString("    finished((\"finished\"))\n")

	prev := "invoke"
	for i, st := range states {
		fmt.Fprintf(&sb, "    %s --> %s\n", prev, ids[i])
		if st.Optional {
			next := "main"
			if i+1 < len(ids) {
				next = ids[i+1]
			}
			fmt.Fprintf(&sb, "    %s -. \"skip\" .-> %s\n", prev, next)
		}
		prev = ids[i]
	}
	fmt.Fprintf(&sb, "    %s --> main\n", prev)
	sb.WriteString("    main --> finished\n")
	if t.ContinuousDraw && len(ids) > 1 {
		fmt.Fprintf(&sb, "    main -. \"chain\" .-> %s\n", ids[1])
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		byName := make(map[string]string, len(states))
		for i, st := range states {
			byName[st.Name] = ids[i]
		}
		seen := make(map[string]bool)
		for _, name := range overlay.Visited {
			if id, ok := byName[name]; ok && !seen[id] {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}
		if id, ok := byName[overlay.Current]; ok {
			fmt.Fprintf(&sb, "    class %s current;\n", id)
		}
	}
	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, id)
}
