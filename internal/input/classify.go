// Package input maps raw host events to the semantic categories the operator engine acts on.
package input

import "github.com/aretw0/stencil/pkg/domain"

// UnitLetters are the keys that may follow digits as a unit suffix
// (mm, cm, m, km, um, in, ft, yd, mi, deg, rad).
const UnitLetters = "acdefgikmnrtuy"

// specialKeys maps named keys pressed down to their class.
var specialKeys = map[domain.Key]domain.Class{
	domain.KeyEnter:        {Category: domain.CategoryConfirm},
	domain.KeyNumpadEnter:  {Category: domain.CategoryConfirm},
	domain.KeyEscape:       {Category: domain.CategoryCancel},
	domain.KeyTab:          {Category: domain.CategoryNextComponent},
	domain.KeyBackspace:    {Category: domain.CategoryBackspace},
	domain.KeyNumpadPeriod: {Category: domain.CategorySeparator},
	domain.KeyNumpadMinus:  {Category: domain.CategorySign},
	domain.KeyNumpad0:      {Category: domain.CategoryDigit, Digit: '0'},
	domain.KeyNumpad1:      {Category: domain.CategoryDigit, Digit: '1'},
	domain.KeyNumpad2:      {Category: domain.CategoryDigit, Digit: '2'},
	domain.KeyNumpad3:      {Category: domain.CategoryDigit, Digit: '3'},
	domain.KeyNumpad4:      {Category: domain.CategoryDigit, Digit: '4'},
	domain.KeyNumpad5:      {Category: domain.CategoryDigit, Digit: '5'},
	domain.KeyNumpad6:      {Category: domain.CategoryDigit, Digit: '6'},
	domain.KeyNumpad7:      {Category: domain.CategoryDigit, Digit: '7'},
	domain.KeyNumpad8:      {Category: domain.CategoryDigit, Digit: '8'},
	domain.KeyNumpad9:      {Category: domain.CategoryDigit, Digit: '9'},
}

// Classify maps an event to its semantic class. It has no side effects.
func Classify(ev domain.Event) domain.Class {
	switch ev.Type {
	case domain.EventMouseMove, domain.EventWheel, domain.EventTrackpad:
		return domain.Class{Category: domain.CategoryNavigation}

	case domain.EventMouseButton:
		// Middle button drives view navigation whatever its action.
		if ev.Button == domain.ButtonMiddle {
			return domain.Class{Category: domain.CategoryNavigation}
		}
		if !ev.IsPress() {
			return domain.Class{}
		}
		switch ev.Button {
		case domain.ButtonLeft:
			return domain.Class{Category: domain.CategoryConfirm}
		case domain.ButtonRight:
			return domain.Class{Category: domain.CategoryCancel}
		}
		return domain.Class{}

	case domain.EventKey:
		if !ev.IsPress() {
			return domain.Class{}
		}
		if ev.Key == domain.KeyRune {
			return classifyRune(ev.Rune, ev.Mods)
		}
		if c, ok := specialKeys[ev.Key]; ok {
			return c
		}
	}
	return domain.Class{}
}

func classifyRune(r rune, mods domain.Modifier) domain.Class {
	// Chords belong to the host's keymap.
	if mods&(domain.ModCtrl|domain.ModAlt) != 0 {
		return domain.Class{}
	}
	switch {
	case r >= '0' && r <= '9':
		return domain.Class{Category: domain.CategoryDigit, Digit: byte(r)}
	case r == '.' || r == ',':
		return domain.Class{Category: domain.CategorySeparator}
	case r == '-':
		return domain.Class{Category: domain.CategorySign}
	case r == ' ':
		return domain.Class{}
	}
	if IsUnitLetter(r) {
		return domain.Class{Category: domain.CategoryUnit, Unit: toLower(r)}
	}
	return domain.Class{}
}

// IsUnitLetter reports whether r is one of the unit suffix keys.
func IsUnitLetter(r rune) bool {
	r = toLower(r)
	for _, u := range UnitLetters {
		if r == u {
			return true
		}
	}
	return false
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
