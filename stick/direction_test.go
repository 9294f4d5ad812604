package stick_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmove/dmove/stick"
)

func code(c uint8) *uint8 { return &c }

func TestSetters_ReportChangesOnly(t *testing.T) {
	s := stick.NewDirectionalState()

	assert.False(t, s.SetDigital(stick.Up, false))
	assert.True(t, s.SetDigital(stick.Up, true))
	assert.False(t, s.SetDigital(stick.Up, true))
	assert.Equal(t, 1.0, s.Get(stick.Up))

	assert.True(t, s.SetAnalog(stick.Left, 0.25))
	assert.False(t, s.SetAnalog(stick.Left, 0.25))
	assert.True(t, s.SetAnalog(stick.Left, 0.2500001))
}

func TestGetScaled(t *testing.T) {
	r := stick.ActivationRange{Start: 0.2, End: 0.6}
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "released", value: 0, want: 0},
		{name: "at start", value: 0.2, want: 0},
		{name: "midpoint", value: 0.4, want: 0.5},
		{name: "at end", value: 0.6, want: 1},
		{name: "past end", value: 0.9, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stick.NewDirectionalState()
			s.SetAnalog(stick.Right, tt.value)
			assert.InDelta(t, tt.want, s.GetScaled(stick.Right, r), 1e-12)
		})
	}
}

func TestAxes(t *testing.T) {
	tests := []struct {
		name         string
		set          map[stick.Direction]float64
		wantX, wantY float64
	}{
		{name: "none", set: nil},
		{name: "up right", set: map[stick.Direction]float64{stick.Up: 1, stick.Right: 1}, wantX: 1, wantY: 1},
		{name: "opposing cancel", set: map[stick.Direction]float64{stick.Left: 1, stick.Right: 1}},
		{name: "stronger wins", set: map[stick.Direction]float64{stick.Up: 0.3, stick.Down: 0.8}, wantY: -0.8},
		{name: "left", set: map[stick.Direction]float64{stick.Left: 0.5}, wantX: -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stick.NewDirectionalState()
			for d, v := range tt.set {
				s.SetAnalog(d, v)
			}
			x, y := s.Axes(stick.FullRange)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantY, y)
		})
	}
}

func TestUpdate_MergesBindingsWithMax(t *testing.T) {
	bindings := stick.Bindings{
		stick.Up:    {Primary: code(0x57), Secondary: code(0x26)},
		stick.Down:  {Primary: code(0x53)},
		stick.Left:  {Primary: code(0x41)},
		stick.Right: {},
	}
	s := stick.NewDirectionalState()

	assert.True(t, s.Update(map[uint8]float64{0x26: 0.4, 0x57: 0.7}, bindings))
	assert.Equal(t, 0.7, s.Get(stick.Up))

	assert.False(t, s.Update(map[uint8]float64{0x26: 0.4, 0x57: 0.7}, bindings))

	assert.True(t, s.Update(map[uint8]float64{}, bindings))
	assert.Equal(t, 0.0, s.Get(stick.Up))
}

func TestBindingsCodes_Deduplicates(t *testing.T) {
	b := stick.Bindings{
		stick.Up:   {Primary: code(1), Secondary: code(2)},
		stick.Down: {Primary: code(2)},
	}
	assert.Equal(t, []uint8{1, 2}, b.Codes())
}

func TestReset(t *testing.T) {
	s := stick.NewDirectionalState()
	assert.False(t, s.Reset())
	s.SetDigital(stick.Down, true)
	assert.True(t, s.Reset())
	assert.Equal(t, 0.0, s.Get(stick.Down))
}
