package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/runner"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
// When the renderer cannot be built the markdown is returned as is.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// ToolMarkdown documents a tool: its label, shortcut, docstring and state table.
func ToolMarkdown(id string, t *domain.Tool, shortcut string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.DisplayName())
	fmt.Fprintf(&b, "Tool `%s`", id)
	if shortcut != "" {
		fmt.Fprintf(&b, ", shortcut **%s**", shortcut)
	}
	b.WriteString("\n\n")
	if t.Doc != "" {
		b.WriteString(t.Doc + "\n\n")
	}

	var flags []string
	if t.ContinuousDraw {
		flags = append(flags, "continuous draw")
	}
	if t.WaitForInput {
		flags = append(flags, "prefills from the selection")
	}
	if t.SkipUndo {
		flags = append(flags, "keeps changes on cancel")
	}
	if len(flags) > 0 {
		b.WriteString("_" + strings.Join(flags, ", ") + "_\n\n")
	}

	b.WriteString("| # | State | Picks | Property | Notes |\n")
	b.WriteString("|---|-------|-------|----------|-------|\n")
	for i, st := range t.Table.States() {
		picks := "-"
		if st.HasPointer() {
			picks = st.Pointer.String()
		}
		prop := st.Property.Resolve(nil)
		if prop == "" {
			prop = "-"
		}
		var notes []string
		if d := st.Description.Resolve(nil); d != "" {
			notes = append(notes, d)
		}
		if st.Optional {
			notes = append(notes, "optional")
		}
		if st.NoEvent {
			notes = append(notes, "computed")
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i+1, st.Name, picks, prop, strings.Join(notes, "; "))
	}
	return b.String()
}

// ReportRenderer colors report lines by outcome for terminal output.
func ReportRenderer(out *termenv.Output) runner.ReportRenderer {
	return func(rep domain.Report) string {
		text := runner.FormatReport(rep)
		s := out.String(text)
		switch {
		case rep.Result == domain.ResultFinished:
			s = s.Foreground(out.Color("#4ade80"))
		case rep.Result == domain.ResultCancelled:
			s = s.Foreground(out.Color("#f87171"))
		case rep.Chained:
			s = s.Foreground(out.Color("#facc15"))
		default:
			s = s.Faint()
		}
		if rep.OperationFailed {
			s = s.Bold()
		}
		return s.String()
	}
}
