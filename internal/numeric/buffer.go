// Package numeric holds the per-component text buffers used while a value is typed in.
package numeric

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/stencil/pkg/domain"
)

// UnitParser converts text carrying unit suffixes into a base-unit value.
type UnitParser interface {
	ParseWithUnit(text string, unit domain.UnitKind) (float64, error)
}

// Buffer accumulates typed numeric text, one string per vector component.
// The zero value is ready to use.
type Buffer struct {
	parts map[int]string
}

// Text returns the raw text of component i.
func (b *Buffer) Text(i int) string {
	return b.parts[i]
}

// Empty reports whether component i holds no text.
func (b *Buffer) Empty(i int) bool {
	return b.parts[i] == ""
}

// Parts returns a copy of all non-empty components.
func (b *Buffer) Parts() map[int]string {
	out := make(map[int]string, len(b.parts))
	for k, v := range b.parts {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Reset clears every component.
func (b *Buffer) Reset() {
	b.parts = nil
}

func (b *Buffer) set(i int, s string) {
	if b.parts == nil {
		b.parts = make(map[int]string)
	}
	b.parts[i] = s
}

// Append adds a token to component i and reports whether it was accepted.
// Separators are rejected once the component holds one, and become "0." when
// they would not follow a digit.
func (b *Buffer) Append(i int, token rune) bool {
	cur := b.parts[i]
	switch {
	case token >= '0' && token <= '9':
		b.set(i, cur+string(token))
		return true
	case token == '.' || token == ',':
		if strings.Contains(cur, ".") {
			return false
		}
		if cur == "" || !endsInDigit(cur) {
			b.set(i, cur+"0.")
			return true
		}
		b.set(i, cur+".")
		return true
	case unicode.IsLetter(token):
		b.set(i, cur+string(unicode.ToLower(token)))
		return true
	}
	return false
}

// Backspace removes the last character of component i.
func (b *Buffer) Backspace(i int) {
	cur := b.parts[i]
	if cur == "" {
		return
	}
	r := []rune(cur)
	b.set(i, string(r[:len(r)-1]))
}

// ToggleSign prepends a minus sign, or strips it when present.
func (b *Buffer) ToggleSign(i int) {
	cur := b.parts[i]
	if strings.HasPrefix(cur, "-") {
		b.set(i, cur[1:])
		return
	}
	b.set(i, "-"+cur)
}

// Apply feeds a classified event into component i and reports whether the buffer changed.
func (b *Buffer) Apply(i int, c domain.Class) bool {
	switch c.Category {
	case domain.CategoryDigit:
		return b.Append(i, rune(c.Digit))
	case domain.CategorySeparator:
		return b.Append(i, '.')
	case domain.CategoryUnit:
		return b.Append(i, c.Unit)
	case domain.CategorySign:
		b.ToggleSign(i)
		return true
	case domain.CategoryBackspace:
		before := b.parts[i]
		b.Backspace(i)
		return before != b.parts[i]
	}
	return false
}

// Resolve converts component i into a value for the given property.
// An empty component takes live[i] when provided, else the declared default.
// Text that cannot be parsed degrades to the default; it never fails.
func (b *Buffer) Resolve(i int, desc domain.PropertyDescriptor, units UnitParser, live []float64) float64 {
	text := strings.TrimSpace(b.parts[i])
	if text == "" || text == "-" {
		if i < len(live) {
			return live[i]
		}
		return desc.DefaultAt(i)
	}

	if hasUnit(text) {
		if units != nil {
			if v, err := units.ParseWithUnit(text, desc.Unit); err == nil {
				return v
			}
		}
		return desc.DefaultAt(i)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return desc.DefaultAt(i)
	}
	return v
}

// ResolveAll resolves every component of desc.
func (b *Buffer) ResolveAll(desc domain.PropertyDescriptor, units UnitParser, live []float64) []float64 {
	n := desc.Components()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = b.Resolve(i, desc, units, live)
	}
	return out
}

func endsInDigit(s string) bool {
	if s == "" {
		return false
	}
	c := s[len(s)-1]
	return c >= '0' && c <= '9'
}

func hasUnit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
