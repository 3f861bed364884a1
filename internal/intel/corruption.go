package intel

import "math"

// CorruptInt perturbs an integer observation field by magnitude m
// (spec §4.7 step (c), B4): the corrupted result is clamped to
// [max(0, floor(v*(1-m))), ceil(v*(1+m))], zero stays zero, and
// non-negative fields never go negative. roll is a float64 in [0,1)
// supplied by the caller's RNG sub-stream so corruption stays
// reproducible (spec P5).
func CorruptInt(v int, m float64, roll float64) int {
	if v == 0 {
		return 0
	}
	lo := int(math.Floor(float64(v) * (1 - m)))
	if lo < 0 {
		lo = 0
	}
	hi := int(math.Ceil(float64(v) * (1 + m)))
	if hi < lo {
		hi = lo
	}
	span := hi - lo
	if span <= 0 {
		return lo
	}
	return lo + int(roll*float64(span+1))
}

// CorruptInt64 is CorruptInt for int64-valued fields (e.g. population).
func CorruptInt64(v int64, m float64, roll float64) int64 {
	return int64(CorruptInt(int(v), m, roll))
}
