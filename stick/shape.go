package stick

import "math"

// BackwardFraction is the fraction used for every diagonal with a negative y,
// whatever the configuration says.
const BackwardFraction = 0.5

const (
	DefaultDiagonalFraction  = 0.67
	DefaultSingleKeyFraction = 0.78
)

// Vector is a stick position with both components in [-1,1]. Y is positive
// forward.
type Vector struct {
	X float64
	Y float64
}

// Zero is the neutral stick position.
var Zero = Vector{}

// Shaping controls how diagonal input is bent away from 45 degrees.
//
// UpDiagonal is the share given to the forward axis on forward diagonals.
// LeftUpDiagonal overrides it for forward-left diagonals when non-zero.
// SingleKey is the share kept on the horizontal axis when AdvancedStrafe tilts
// a lone left or right press forward.
type Shaping struct {
	UpDiagonal     float64
	LeftUpDiagonal float64
	SingleKey      float64
	AdvancedStrafe bool
}

// DefaultShaping returns the stock tuning.
func DefaultShaping() Shaping {
	return Shaping{
		UpDiagonal: DefaultDiagonalFraction,
		SingleKey:  DefaultSingleKeyFraction,
	}
}

func (s Shaping) forwardFraction(x float64) float64 {
	if x < 0 && s.LeftUpDiagonal > 0 {
		return s.LeftUpDiagonal
	}
	return s.UpDiagonal
}

// Shape maps combined signed axis input to a stick vector.
//
// Diagonals keep the magnitude of the larger input axis but are rotated
// according to the shaping fraction: the offset (x*(1-f), y*f) is normalised
// and rescaled. Backward diagonals always use BackwardFraction.
func Shape(x, y float64, s Shaping) Vector {
	if x == 0 && y == 0 {
		return Zero
	}
	if y == 0 && s.AdvancedStrafe {
		ax := math.Abs(x)
		return scaleTo(x*s.SingleKey, ax*(1-s.SingleKey), ax)
	}
	if x == 0 || y == 0 {
		return Vector{X: x, Y: y}
	}

	f := BackwardFraction
	if y > 0 {
		f = s.forwardFraction(x)
	}
	m := math.Max(math.Abs(x), math.Abs(y))
	return scaleTo(x*(1-f), y*f, m)
}

// scaleTo normalises (ox, oy) to unit length and multiplies it by m.
func scaleTo(ox, oy, m float64) Vector {
	n := math.Hypot(ox, oy)
	if n == 0 {
		return Zero
	}
	return Vector{X: ox / n * m, Y: oy / n * m}
}

// Vector shapes the current state through r and s.
func (st *DirectionalState) Vector(r ActivationRange, s Shaping) Vector {
	x, y := st.Axes(r)
	return Shape(x, y, s)
}
