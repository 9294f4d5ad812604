// Package stick tracks per-direction key intensities and shapes them into an
// analog stick vector.
package stick

import "fmt"

// Direction is one of the four logical stick directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists all directions in a stable order.
var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ActivationRange is the analog actuation window. Readings at or below Start
// are released, readings above End are fully pressed.
type ActivationRange struct {
	Start float64
	End   float64
}

// FullRange passes analog readings through unchanged.
var FullRange = ActivationRange{Start: 0, End: 1}

// Binding holds up to two key codes for one direction.
type Binding struct {
	Primary   *uint8
	Secondary *uint8
}

// Codes returns the bound key codes, skipping unset slots.
func (b Binding) Codes() []uint8 {
	out := make([]uint8, 0, 2)
	if b.Primary != nil {
		out = append(out, *b.Primary)
	}
	if b.Secondary != nil {
		out = append(out, *b.Secondary)
	}
	return out
}

// Bindings maps each direction to its key codes.
type Bindings map[Direction]Binding

// Codes returns every bound key code, deduplicated.
func (b Bindings) Codes() []uint8 {
	seen := make(map[uint8]bool)
	var out []uint8
	for _, d := range Directions {
		for _, c := range b[d].Codes() {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// DirectionalState stores the current intensity in [0,1] of each direction.
// Setters report whether the stored value actually changed so callers can
// skip redundant report writes.
type DirectionalState struct {
	values [4]float64
}

// NewDirectionalState returns a state with every direction released.
func NewDirectionalState() *DirectionalState {
	return &DirectionalState{}
}

// SetDigital stores 1 for pressed and 0 for released.
func (s *DirectionalState) SetDigital(d Direction, pressed bool) bool {
	if pressed {
		return s.SetAnalog(d, 1)
	}
	return s.SetAnalog(d, 0)
}

// SetAnalog stores value. Changes are detected by exact comparison.
func (s *DirectionalState) SetAnalog(d Direction, value float64) bool {
	if s.values[d] == value {
		return false
	}
	s.values[d] = value
	return true
}

// Get returns the raw intensity of d.
func (s *DirectionalState) Get(d Direction) float64 {
	return s.values[d]
}

// GetScaled remaps the intensity of d through the activation window r.
func (s *DirectionalState) GetScaled(d Direction, r ActivationRange) float64 {
	v := s.values[d]
	switch {
	case v <= r.Start:
		return 0
	case v > r.End || r.End <= r.Start:
		return 1
	default:
		return (v - r.Start) / (r.End - r.Start)
	}
}

// Axes reduces the four directions to signed x (right positive) and y (up
// positive). The stronger of two opposing directions wins; a tie cancels.
func (s *DirectionalState) Axes(r ActivationRange) (x, y float64) {
	up, down := s.GetScaled(Up, r), s.GetScaled(Down, r)
	left, right := s.GetScaled(Left, r), s.GetScaled(Right, r)
	return combine(right, left), combine(up, down)
}

func combine(pos, neg float64) float64 {
	switch {
	case pos > neg:
		return pos
	case neg > pos:
		return -neg
	default:
		return 0
	}
}

// Update applies one input snapshot. Each direction takes the maximum of its
// bound codes; codes missing from the snapshot count as released. Returns
// true if any direction changed.
func (s *DirectionalState) Update(snapshot map[uint8]float64, bindings Bindings) bool {
	changed := false
	for _, d := range Directions {
		v := 0.0
		for _, c := range bindings[d].Codes() {
			v = max(v, snapshot[c])
		}
		if s.SetAnalog(d, v) {
			changed = true
		}
	}
	return changed
}

// Reset releases every direction and reports whether anything was held.
func (s *DirectionalState) Reset() bool {
	changed := false
	for _, d := range Directions {
		if s.SetAnalog(d, 0) {
			changed = true
		}
	}
	return changed
}
