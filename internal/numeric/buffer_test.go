package numeric_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/stencil/internal/numeric"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type fakeUnits struct{}

func (fakeUnits) ParseWithUnit(text string, unit domain.UnitKind) (float64, error) {
	switch text {
	case "5mm":
		return 0.005, nil
	case "2m":
		return 2, nil
	}
	return 0, errors.New("bad unit")
}

func TestBuffer_Separator(t *testing.T) {
	t.Run("empty buffer gets a leading zero", func(t *testing.T) {
		var b numeric.Buffer
		assert.True(t, b.Append(0, '.'))
		assert.Equal(t, "0.", b.Text(0))
	})

	t.Run("second separator is rejected", func(t *testing.T) {
		var b numeric.Buffer
		b.Append(0, '1')
		b.Append(0, '.')
		b.Append(0, '5')
		assert.False(t, b.Append(0, '.'))
		assert.Equal(t, "1.5", b.Text(0))
	})

	t.Run("after sign", func(t *testing.T) {
		var b numeric.Buffer
		b.ToggleSign(0)
		b.Append(0, ',')
		assert.Equal(t, "-0.", b.Text(0))
	})

	t.Run("never two separators", func(t *testing.T) {
		var b numeric.Buffer
		for _, tok := range "1..2,.3-.a.9" {
			if tok == '-' {
				b.ToggleSign(0)
				continue
			}
			b.Append(0, tok)
			assert.LessOrEqual(t, strings.Count(b.Text(0), "."), 1)
		}
	})
}

func TestBuffer_Backspace(t *testing.T) {
	var b numeric.Buffer
	b.Backspace(0)
	assert.Equal(t, "", b.Text(0))

	b.Append(0, '4')
	b.Append(0, '2')
	b.Backspace(0)
	assert.Equal(t, "4", b.Text(0))
	assert.False(t, b.Apply(1, domain.Class{Category: domain.CategoryBackspace}))
}

func TestBuffer_ToggleSignTwiceIsIdentity(t *testing.T) {
	for _, start := range []string{"", "3", "-3", "0.5mm"} {
		var b numeric.Buffer
		if strings.HasPrefix(start, "-") {
			b.ToggleSign(0)
		}
		for _, r := range strings.TrimPrefix(start, "-") {
			b.Append(0, r)
		}
		before := b.Text(0)
		b.ToggleSign(0)
		b.ToggleSign(0)
		assert.Equal(t, before, b.Text(0))
	}
}

func TestBuffer_ComponentsAreIndependent(t *testing.T) {
	var b numeric.Buffer
	b.Apply(0, domain.Class{Category: domain.CategoryDigit, Digit: '5'})
	b.Apply(1, domain.Class{Category: domain.CategoryDigit, Digit: '3'})
	assert.Equal(t, map[int]string{0: "5", 1: "3"}, b.Parts())

	b.Reset()
	assert.True(t, b.Empty(0))
	assert.True(t, b.Empty(1))
}

func TestBuffer_Resolve(t *testing.T) {
	desc := domain.PropertyDescriptor{Name: "co", Size: 2, Default: []float64{7, 8}, Unit: domain.UnitLength}

	t.Run("plain number", func(t *testing.T) {
		var b numeric.Buffer
		b.Append(0, '1')
		b.Append(0, '.')
		b.Append(0, '5')
		assert.Equal(t, 1.5, b.Resolve(0, desc, fakeUnits{}, nil))
	})

	t.Run("unit suffix", func(t *testing.T) {
		var b numeric.Buffer
		for _, r := range "5mm" {
			b.Append(0, r)
		}
		assert.Equal(t, 0.005, b.Resolve(0, desc, fakeUnits{}, nil))
	})

	t.Run("malformed unit falls back to default", func(t *testing.T) {
		var b numeric.Buffer
		for _, r := range "5km" {
			b.Append(0, r)
		}
		assert.Equal(t, 7.0, b.Resolve(0, desc, fakeUnits{}, nil))
	})

	t.Run("empty uses live value", func(t *testing.T) {
		var b numeric.Buffer
		b.Append(0, '2')
		assert.Equal(t, []float64{2, 40}, b.ResolveAll(desc, fakeUnits{}, []float64{10, 40}))
	})

	t.Run("empty without live uses default", func(t *testing.T) {
		var b numeric.Buffer
		assert.Equal(t, 8.0, b.Resolve(1, desc, nil, nil))
	})

	t.Run("lone sign uses live value", func(t *testing.T) {
		var b numeric.Buffer
		b.ToggleSign(0)
		assert.Equal(t, 3.0, b.Resolve(0, desc, nil, []float64{3}))
	})
}
