// Package units converts typed values carrying unit suffixes ("5mm", "1ft 3in", "90deg")
// into scene base units.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/stencil/pkg/domain"
)

var (
	// ErrSyntax is returned when the text is not a sequence of number/unit terms.
	ErrSyntax = errors.New("invalid unit expression")
	// ErrUnknownUnit is returned for a suffix that is not a known unit.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrUnitMismatch is returned when a suffix does not match the property's unit kind.
	ErrUnitMismatch = errors.New("unit does not match property")
)

// Kind selects how bare numbers without a suffix are interpreted.
type Kind string

const (
	Metric   Kind = "metric"
	Imperial Kind = "imperial"
	None     Kind = "none"
)

type unitDef struct {
	kind   domain.UnitKind
	factor float64 // meters for lengths, degrees for angles
}

var table = map[string]unitDef{
	"um":  {domain.UnitLength, 1e-6},
	"mm":  {domain.UnitLength, 1e-3},
	"cm":  {domain.UnitLength, 1e-2},
	"dm":  {domain.UnitLength, 1e-1},
	"m":   {domain.UnitLength, 1},
	"km":  {domain.UnitLength, 1e3},
	"in":  {domain.UnitLength, 0.0254},
	"ft":  {domain.UnitLength, 0.3048},
	"yd":  {domain.UnitLength, 0.9144},
	"mi":  {domain.UnitLength, 1609.344},
	"deg": {domain.UnitAngle, 1},
	"d":   {domain.UnitAngle, 1},
	"rad": {domain.UnitAngle, 180 / math.Pi},
	"r":   {domain.UnitAngle, 180 / math.Pi},
}

// System is a scene unit system. Lengths resolve to meters divided by
// ScaleLength; angles resolve to degrees.
type System struct {
	Kind        Kind
	ScaleLength float64
}

// Default returns a metric system with unit scale.
func Default() System {
	return System{Kind: Metric, ScaleLength: 1}
}

func (s System) scale() float64 {
	if s.ScaleLength <= 0 {
		return 1
	}
	return s.ScaleLength
}

// bareFactor is the unit applied to terms without a suffix.
func (s System) bareFactor(kind domain.UnitKind) float64 {
	if kind == domain.UnitLength && s.Kind == Imperial {
		return table["ft"].factor
	}
	return 1
}

// ParseWithUnit parses text such as "1m 50cm" into the base unit of kind.
func (s System) ParseWithUnit(text string, kind domain.UnitKind) (float64, error) {
	terms, neg, err := split(text)
	if err != nil {
		return 0, err
	}

	total := 0.0
	for _, t := range terms {
		v, err := strconv.ParseFloat(t.number, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrSyntax, t.number)
		}
		if t.unit == "" {
			total += v * s.bareFactor(kind)
			continue
		}
		def, ok := table[t.unit]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, t.unit)
		}
		if kind != domain.UnitNone && def.kind != kind {
			return 0, fmt.Errorf("%w: %q is not a %s unit", ErrUnitMismatch, t.unit, kind)
		}
		total += v * def.factor
	}

	if kind == domain.UnitLength || kind == domain.UnitNone {
		total /= s.scale()
	}
	if neg {
		total = -total
	}
	return total, nil
}

// Parse is ParseWithUnit on the default system.
func Parse(text string, kind domain.UnitKind) (float64, error) {
	return Default().ParseWithUnit(text, kind)
}

type term struct {
	number string
	unit   string
}

func split(text string) ([]term, bool, error) {
	s := strings.TrimSpace(strings.ToLower(text))
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	if s == "" {
		return nil, false, ErrSyntax
	}

	var terms []term
	r := []rune(s)
	for i := 0; i < len(r); {
		for i < len(r) && unicode.IsSpace(r[i]) {
			i++
		}
		if i >= len(r) {
			break
		}
		start := i
		for i < len(r) && (unicode.IsDigit(r[i]) || r[i] == '.') {
			i++
		}
		if start == i {
			return nil, false, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
		num := string(r[start:i])
		for i < len(r) && unicode.IsSpace(r[i]) {
			i++
		}
		ustart := i
		for i < len(r) && unicode.IsLetter(r[i]) {
			i++
		}
		terms = append(terms, term{number: num, unit: string(r[ustart:i])})
	}
	return terms, neg, nil
}
