package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/stencil/internal/presentation/graph"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func testTool() *domain.Tool {
	return &domain.Tool{
		ID:             "line",
		Label:          "Add Line",
		ContinuousDraw: true,
		Table: domain.NewStateTable(
			domain.StateDefinition{Name: "Start", Pointer: domain.Kinds(domain.PointerVertex), Property: domain.PropertyName("p1")},
			domain.StateDefinition{Name: "End", Pointer: domain.Kinds(domain.PointerVertex), Property: domain.PropertyName("p2")},
			domain.StateDefinition{Name: "Line Width", Property: domain.PropertyName("width"), Optional: true},
			domain.StateDefinition{Name: "Length", NoEvent: true},
		),
	}
}

func TestGenerateMermaid(t *testing.T) {
	got := graph.GenerateMermaid(testTool(), nil)

	tests := []struct {
		name     string
		contains []string
	}{
		{"header", []string{"graph TD\n", "invoke((\"invoke\"))", "finished((\"finished\"))"}},
		{"picking shape", []string{"s0_Start[/\"Start <br/> vertex <br/> = p1\"/]"}},
		{"property shape", []string{"s2_Line_Width[\"Line Width <br/> = width\"]"}},
		{"computed shape", []string{"s3_Length[[\"Length\"]]"}},
		{"flow", []string{"invoke --> s0_Start", "s0_Start --> s1_End", "s3_Length --> main", "main --> finished"}},
		{"optional bypass", []string{"s1_End -. \"skip\" .-> s3_Length"}},
		{"chain", []string{"main -. \"chain\" .-> s1_End"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
		})
	}
	assert.NotContains(t, got, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	tool := testTool()
	overlay := graph.OverlayFromReport(tool, domain.Report{StateIndex: 1, StateName: "End"})
	assert.Equal(t, []string{"Start"}, overlay.Visited)

	got := graph.GenerateMermaid(tool, overlay)
	assert.Contains(t, got, "class s0_Start visited;")
	assert.Contains(t, got, "class s1_End current;")
	assert.Equal(t, 1, strings.Count(got, "visited;"))
}

func TestGenerateMermaid_NoChainForSingleState(t *testing.T) {
	tool := &domain.Tool{
		ID:             "point",
		ContinuousDraw: true,
		Table:          domain.NewStateTable(domain.StateDefinition{Name: "Location", Property: domain.PropertyName("co")}),
	}
	got := graph.GenerateMermaid(tool, nil)
	assert.NotContains(t, got, "chain")
	assert.Contains(t, got, "s0_Location --> main")
}
