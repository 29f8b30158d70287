package runner

import (
	"testing"

	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, c *cursor, line string) []Command {
	t.Helper()
	raw, err := ParseLine(line)
	require.NoError(t, err)
	w, err := decodeWire(raw)
	require.NoError(t, err)
	cmds, err := w.commands(c)
	require.NoError(t, err)
	return cmds
}

func TestParseLine_Skips(t *testing.T) {
	for _, line := range []string{"", "   ", "# comment"} {
		raw, err := ParseLine(line)
		require.NoError(t, err)
		assert.Nil(t, raw)
	}
}

func TestCommands_Events(t *testing.T) {
	c := &cursor{}

	cmds := parse(t, c, "move 10 20")
	require.Len(t, cmds, 1)
	assert.Equal(t, domain.MouseMove(domain.Vec2{X: 10, Y: 20}), cmds[0].Event)

	cmds = parse(t, c, "click right shift")
	require.Len(t, cmds, 1)
	ev := cmds[0].Event
	assert.Equal(t, domain.ButtonRight, ev.Button)
	assert.Equal(t, domain.Vec2{X: 10, Y: 20}, ev.Pos, "click without coordinates uses the last position")
	assert.Equal(t, domain.ModShift, ev.Mods)

	cmds = parse(t, c, "release 1 2")
	assert.Equal(t, domain.ActionRelease, cmds[0].Event.Action)

	cmds = parse(t, c, "type 1.5mm")
	require.Len(t, cmds, 5)
	assert.Equal(t, 'm', cmds[4].Event.Rune)
	assert.Equal(t, domain.Vec2{X: 1, Y: 2}, cmds[4].Event.Pos)

	cmds = parse(t, c, "key enter")
	assert.Equal(t, domain.KeyEnter, cmds[0].Event.Key)
	cmds = parse(t, c, "esc")
	assert.Equal(t, domain.KeyEscape, cmds[0].Event.Key)
	cmds = parse(t, c, "wheel -2")
	assert.Equal(t, domain.EventWheel, cmds[0].Event.Type)
	assert.Equal(t, -2.0, cmds[0].Event.Delta)
}

func TestCommands_Control(t *testing.T) {
	c := &cursor{}

	cmds := parse(t, c, "tool line")
	assert.Equal(t, Command{Kind: CommandTool, Tool: "line"}, cmds[0])

	cmds = parse(t, c, "select point Point.002")
	assert.Equal(t, CommandSelect, cmds[0].Kind)
	assert.Equal(t, domain.EntityPointer(sketch.KindPoint, "Point.002"), cmds[0].Pointer)

	cmds = parse(t, c, "select vertex Mesh.001 3")
	assert.Equal(t, domain.ElementPointer(domain.PointerVertex, "Mesh.001", 3), cmds[0].Pointer)

	cmds = parse(t, c, "exec line p2=4,5 Start=point:Point.001 V=vertex:Mesh.001[2]")
	require.Len(t, cmds, 1)
	v := cmds[0].Values
	assert.Equal(t, "line", cmds[0].Tool)
	assert.Equal(t, []float64{4, 5}, v.Properties["p2"])
	assert.Equal(t, domain.EntityPointer(sketch.KindPoint, "Point.001"), v.Pointers["Start"])
	assert.Equal(t, domain.ElementPointer(domain.PointerVertex, "Mesh.001", 2), v.Pointers["V"])

	cmds = parse(t, c, "cancel")
	assert.Equal(t, CommandCancel, cmds[0].Kind)
}

func TestCommands_Errors(t *testing.T) {
	bad := []string{
		"tool",
		"move 1",
		"key",
		"select point",
		"exec line p2",
		"jump 1 2",
		"click 1 2 thumb",
		"key sideways",
		"select blob Blob.001",
	}
	for _, line := range bad {
		t.Run(line, func(t *testing.T) {
			raw, err := ParseLine(line)
			if err != nil {
				return
			}
			w, err := decodeWire(raw)
			if err != nil {
				return
			}
			_, err = w.commands(&cursor{})
			assert.Error(t, err)
		})
	}
}
