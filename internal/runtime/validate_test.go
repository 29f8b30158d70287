package runtime_test

import (
	"errors"
	"testing"

	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	h := newHost(nil)
	main := func(domain.Session) bool { return true }

	tests := []struct {
		name    string
		tool    func() *domain.Tool
		wantErr error
		state   string
	}{
		{
			name:    "valid",
			tool:    func() *domain.Tool { return lineTool(h) },
			wantErr: nil,
		},
		{
			name: "missing main",
			tool: func() *domain.Tool {
				tl := lineTool(h)
				tl.Main = nil
				return tl
			},
			wantErr: domain.ErrMissingMain,
		},
		{
			name:    "empty table",
			tool:    func() *domain.Tool { return &domain.Tool{ID: "empty", Main: main} },
			wantErr: domain.ErrEmptyTable,
		},
		{
			name: "creatable state without create",
			tool: func() *domain.Tool {
				tl := lineTool(h)
				states := tl.Table.States()
				states[1].CreateElement = nil
				tl.Table = domain.NewStateTable(states...)
				return tl
			},
			wantErr: domain.ErrMissingCreate,
			state:   "End",
		},
		{
			name: "unknown property",
			tool: func() *domain.Tool {
				tl := lineTool(h)
				tl.Properties = tl.Properties[:1]
				return tl
			},
			wantErr: domain.ErrUnknownProperty,
			state:   "End",
		},
		{
			name: "global object without object state",
			tool: func() *domain.Tool {
				tl := lineTool(h)
				tl.GlobalObject = true
				return tl
			},
			wantErr: domain.ErrGlobalObject,
			state:   "Start",
		},
		{
			name: "pick-only state needs no create",
			tool: func() *domain.Tool {
				return &domain.Tool{
					ID:    "pick",
					Main:  main,
					Table: domain.NewStateTable(domain.StateDefinition{Name: "P", Pointer: domain.Kinds(sketch.KindPoint)}),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runtime.Validate(tt.tool())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			var cfg *domain.ToolConfigError
			require.True(t, errors.As(err, &cfg))
			assert.Equal(t, tt.state, cfg.State)
		})
	}
}

func TestNew_RejectsInvalidTool(t *testing.T) {
	h := newHost(nil)
	tool := lineTool(h)
	tool.Main = nil
	_, err := runtime.New(tool, h)
	assert.ErrorIs(t, err, domain.ErrMissingMain)
}

func TestDescribe(t *testing.T) {
	h := newHost(nil)
	tool := lineTool(h)
	tool.Properties = append(tool.Properties, domain.PropertyDescriptor{Name: "w"})
	tool.Table = tool.Table.Extend(domain.StateDefinition{Name: "Width", Property: domain.PropertyName("w"), Optional: true})

	got := runtime.Describe(tool, "L")
	assert.Equal(t, "Shortcut: L\n"+
		"Add a line between two points.\n"+
		"1. Start: Pick or place a point (point)\n"+
		"2. End: Pick or place a point (point)\n"+
		"3. Width [optional]", got)

	op := newOperator(t, tool, h, runtime.WithKeymapHint("L"))
	assert.Equal(t, got, op.Description())
	assert.NotContains(t, runtime.Describe(tool, ""), "Shortcut")
}
