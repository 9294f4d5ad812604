// Package axis encodes normalised stick values into controller axis units.
package axis

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	// Signed16Max is the positive full-scale value of an XInput axis.
	Signed16Max = math.MaxInt16
	// Signed16Min is the minimum sentinel of an XInput axis.
	Signed16Min = math.MinInt16

	// Unsigned8Center is the neutral DualShock 4 axis value.
	Unsigned8Center = 128

	// signed16Snap is how close to Signed16Min a value must land to be
	// snapped onto it; truncation alone never reaches the sentinel.
	signed16Snap = 10
)

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToSigned16 maps v in [-1,1] onto the signed 16-bit axis range.
func ToSigned16(v float64) int16 {
	if math.IsNaN(v) {
		return 0
	}
	out := int32(clamp(v, -1, 1) * Signed16Max)
	if out < Signed16Min+signed16Snap {
		return Signed16Min
	}
	return int16(out)
}

// ToUnsigned8 maps v in [-1,1] onto 0..255 centred at 128. Values within one
// unit of either end snap to that end.
func ToUnsigned8(v float64) uint8 {
	if math.IsNaN(v) {
		return Unsigned8Center
	}
	out := clamp(v, -1, 1)*127 + Unsigned8Center
	if out >= math.MaxUint8-1 {
		return math.MaxUint8
	}
	if out <= 1 {
		return 0
	}
	return uint8(out)
}
