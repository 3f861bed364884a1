package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ec4x/engine/internal/config"
)

func TestPPDivIntIsFloorDivision(t *testing.T) {
	// spec §4.4 step 2: "points = pp / 40 (integer division)" means
	// floor division, not round-to-nearest.
	cases := []struct {
		pp       int64
		divisor  int64
		expected int64
	}{
		{39, 40, 0},
		{40, 40, 1},
		{199, 40, 4},
		{200, 40, 5},
		{0, 40, 0},
	}
	for _, c := range cases {
		got := config.NewPP(c.pp).DivInt(c.divisor)
		assert.Equal(t, c.expected, got, "DivInt(%d, %d)", c.pp, c.divisor)
	}
}

func TestPPArithmetic(t *testing.T) {
	a := config.NewPP(100)
	b := config.NewPP(40)

	assert.Equal(t, config.NewPP(140).String(), a.Add(b).String())
	assert.Equal(t, config.NewPP(60).String(), a.Sub(b).String())
	assert.True(t, a.GreaterThanOrEqual(b))
	assert.False(t, b.GreaterThanOrEqual(a))
	assert.Equal(t, -1, b.Cmp(a))
}

func TestPPMulFracBlockadePenalty(t *testing.T) {
	base := config.NewPP(1000)
	penalized := base.MulFrac(0.4)
	assert.Equal(t, int64(400), penalized.IntPart())
}

func TestPPIsNegativeAfterOverspend(t *testing.T) {
	treasury := config.NewPP(10)
	spent := treasury.Sub(config.NewPP(50))
	assert.True(t, spent.IsNegative())
}

func TestPPJSONRoundTrip(t *testing.T) {
	p := config.NewPPFromFloat(123.45)
	data, err := p.MarshalJSON()
	assert.NoError(t, err)

	var out config.PP
	assert.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, p.String(), out.String())
}
