package config

import "github.com/shopspring/decimal"

// PP is a production-point (or research-point) quantity. The teacher
// stores resource amounts as float32 (oglike_server/internal/model
// ResourceAmount) because a single client-facing HTTP snapshot never
// needs to replay arithmetic bit-for-bit. The turn engine must
// satisfy P5 (resolve_turn is bit-identical given the same inputs)
// across whatever platform runs it, and repeated float32 accumulation
// over many colonies/turns is exactly the kind of thing that drifts
// between architectures. PP wraps shopspring/decimal instead so every
// addition, multiplication by a blockade/tax/CER factor, and integer
// floor/ceiling used by the spec (e.g. "points = pp / 40", B4's
// floor/ceil corruption bounds) is exact and reproducible.
type PP struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = PP{d: decimal.Zero}

// NewPP builds a PP from an integer number of whole production points.
func NewPP(whole int64) PP {
	return PP{d: decimal.NewFromInt(whole)}
}

// NewPPFromFloat builds a PP from a float64 literal, used only when
// hydrating config tables authored as human-readable YAML.
func NewPPFromFloat(f float64) PP {
	return PP{d: decimal.NewFromFloat(f)}
}

func (p PP) Add(o PP) PP      { return PP{d: p.d.Add(o.d)} }
func (p PP) Sub(o PP) PP      { return PP{d: p.d.Sub(o.d)} }
func (p PP) Mul(factor PP) PP { return PP{d: p.d.Mul(factor.d)} }

// MulFrac multiplies by a plain float64 factor (e.g. the configured
// blockade penalty 0.4, or a CER multiplier in [0.25, 2.0]).
func (p PP) MulFrac(factor float64) PP {
	return PP{d: p.d.Mul(decimal.NewFromFloat(factor))}
}

// DivInt performs integer (floor) division, matching spec §4.4 step 2
// "points = pp / 40 (integer division)".
func (p PP) DivInt(divisor int64) int64 {
	q := p.d.DivRound(decimal.NewFromInt(divisor), int32(decimal.DivisionPrecision))
	return q.Floor().IntPart()
}

// Floor rounds toward negative infinity and returns a whole-PP value.
func (p PP) Floor() PP { return PP{d: p.d.Floor()} }

// Ceil rounds toward positive infinity and returns a whole-PP value.
func (p PP) Ceil() PP { return PP{d: p.d.Ceil()} }

// IntPart truncates to a plain int64, for display/serialization.
func (p PP) IntPart() int64 { return p.d.IntPart() }

// Cmp compares two PP values the way decimal.Decimal.Cmp does: -1, 0, 1.
func (p PP) Cmp(o PP) int { return p.d.Cmp(o.d) }

// LessThan reports whether p < o.
func (p PP) LessThan(o PP) bool { return p.d.LessThan(o.d) }

// GreaterThanOrEqual reports whether p >= o.
func (p PP) GreaterThanOrEqual(o PP) bool { return p.d.GreaterThanOrEqual(o.d) }

// IsNegative reports whether p < 0.
func (p PP) IsNegative() bool { return p.d.IsNegative() }

// Max returns the greater of two PP values.
func Max(a, b PP) PP {
	if a.GreaterThanOrEqual(b) {
		return a
	}
	return b
}

// String renders the value for logs/JSON.
func (p PP) String() string { return p.d.String() }

// MarshalJSON renders the underlying decimal as a JSON number string,
// avoiding float round-trip loss through encoding/json.
func (p PP) MarshalJSON() ([]byte, error) { return p.d.MarshalJSON() }

// UnmarshalJSON parses a PP from either a JSON number or string.
func (p *PP) UnmarshalJSON(b []byte) error { return p.d.UnmarshalJSON(b) }
