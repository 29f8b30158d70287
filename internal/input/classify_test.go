package input_test

import (
	"testing"

	"github.com/aretw0/stencil/internal/input"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	at := domain.Vec2{X: 3, Y: 4}

	tests := []struct {
		name  string
		event domain.Event
		want  domain.Class
	}{
		{"left click confirms", domain.ButtonPress(domain.ButtonLeft, at), domain.Class{Category: domain.CategoryConfirm}},
		{"enter confirms", domain.KeyPress(domain.KeyEnter, at), domain.Class{Category: domain.CategoryConfirm}},
		{"numpad enter confirms", domain.KeyPress(domain.KeyNumpadEnter, at), domain.Class{Category: domain.CategoryConfirm}},
		{"escape cancels", domain.KeyPress(domain.KeyEscape, at), domain.Class{Category: domain.CategoryCancel}},
		{"right click cancels", domain.ButtonPress(domain.ButtonRight, at), domain.Class{Category: domain.CategoryCancel}},
		{"main row digit", domain.RunePress('7', at), domain.Class{Category: domain.CategoryDigit, Digit: '7'}},
		{"numpad digit", domain.KeyPress(domain.KeyNumpad4, at), domain.Class{Category: domain.CategoryDigit, Digit: '4'}},
		{"period separator", domain.RunePress('.', at), domain.Class{Category: domain.CategorySeparator}},
		{"comma separator", domain.RunePress(',', at), domain.Class{Category: domain.CategorySeparator}},
		{"numpad separator", domain.KeyPress(domain.KeyNumpadPeriod, at), domain.Class{Category: domain.CategorySeparator}},
		{"minus sign", domain.RunePress('-', at), domain.Class{Category: domain.CategorySign}},
		{"numpad minus", domain.KeyPress(domain.KeyNumpadMinus, at), domain.Class{Category: domain.CategorySign}},
		{"backspace", domain.KeyPress(domain.KeyBackspace, at), domain.Class{Category: domain.CategoryBackspace}},
		{"tab", domain.KeyPress(domain.KeyTab, at), domain.Class{Category: domain.CategoryNextComponent}},
		{"unit letter", domain.RunePress('M', at), domain.Class{Category: domain.CategoryUnit, Unit: 'm'}},
		{"non unit letter", domain.RunePress('x', at), domain.Class{}},
		{"mouse move", domain.MouseMove(at), domain.Class{Category: domain.CategoryNavigation}},
		{"middle press", domain.ButtonPress(domain.ButtonMiddle, at), domain.Class{Category: domain.CategoryNavigation}},
		{"middle release", domain.Event{Type: domain.EventMouseButton, Action: domain.ActionRelease, Button: domain.ButtonMiddle}, domain.Class{Category: domain.CategoryNavigation}},
		{"wheel", domain.Event{Type: domain.EventWheel, Delta: 1}, domain.Class{Category: domain.CategoryNavigation}},
		{"left release", domain.Event{Type: domain.EventMouseButton, Action: domain.ActionRelease, Button: domain.ButtonLeft}, domain.Class{}},
		{"digit release", domain.Event{Type: domain.EventKey, Action: domain.ActionRelease, Key: domain.KeyRune, Rune: '1'}, domain.Class{}},
		{"ctrl chord", domain.Event{Type: domain.EventKey, Action: domain.ActionPress, Key: domain.KeyRune, Rune: '1', Mods: domain.ModCtrl}, domain.Class{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, input.Classify(tt.event))
		})
	}
}

func TestClass_Predicates(t *testing.T) {
	assert.True(t, input.Classify(domain.RunePress('1', domain.Vec2{})).StartsNumeric())
	assert.True(t, input.Classify(domain.RunePress('-', domain.Vec2{})).StartsNumeric())
	assert.False(t, input.Classify(domain.KeyPress(domain.KeyBackspace, domain.Vec2{})).StartsNumeric())
	assert.True(t, input.Classify(domain.KeyPress(domain.KeyBackspace, domain.Vec2{})).IsNumeric())
	assert.True(t, input.Classify(domain.RunePress('d', domain.Vec2{})).IsNumeric())
	assert.False(t, input.Classify(domain.KeyPress(domain.KeyTab, domain.Vec2{})).IsNumeric())
}
