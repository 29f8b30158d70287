package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/stencil/internal/presentation/graph"
	"github.com/aretw0/stencil/internal/presentation/tui"
)

// ListTools prints one row per registered tool.
func ListTools(w io.Writer, env *Env) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tSHORTCUT\tSTATES")
	for _, id := range env.Kit.Tools() {
		t, err := env.Kit.Definition(id)
		if err != nil {
			return err
		}
		shortcut := env.Config.Keymap[id]
		if shortcut == "" {
			shortcut = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", id, t.DisplayName(), shortcut, t.Table.Count())
	}
	return tw.Flush()
}

// DescribeTool prints the tool documentation, rendered with glamour unless raw.
func DescribeTool(w io.Writer, env *Env, id string, raw bool) error {
	t, err := env.Kit.Definition(id)
	if err != nil {
		return err
	}
	md := tui.ToolMarkdown(id, t, env.Config.Keymap[id])
	if raw {
		_, err = io.WriteString(w, md)
		return err
	}
	out, err := tui.NewRenderer()(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// GraphTool prints the Mermaid flowchart of a tool's states.
func GraphTool(w io.Writer, env *Env, id string) error {
	t, err := env.Kit.Definition(id)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(t, nil))
	return err
}
