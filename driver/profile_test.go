package driver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/stick"
)

func TestProfileByName(t *testing.T) {
	p, err := driver.ProfileByName("")
	require.NoError(t, err)
	assert.Equal(t, driver.Xbox360, p)

	p, err = driver.ProfileByName("DS4")
	require.NoError(t, err)
	assert.Equal(t, driver.DualShock4, p)

	_, err = driver.ProfileByName("gamecube")
	assert.ErrorContains(t, err, "unknown controller profile")
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		profile driver.Profile
		in      stick.Vector
		want    driver.Report
	}{
		{
			name:    "xbox neutral",
			profile: driver.Xbox360,
			want:    driver.Report{},
		},
		{
			name:    "xbox forward",
			profile: driver.Xbox360,
			in:      stick.Vector{Y: 1},
			want:    driver.Report{LeftY: math.MaxInt16},
		},
		{
			name:    "xbox back left",
			profile: driver.Xbox360,
			in:      stick.Vector{X: -1, Y: -1},
			want:    driver.Report{LeftX: math.MinInt16, LeftY: math.MinInt16},
		},
		{
			name:    "ds4 neutral",
			profile: driver.DualShock4,
			want:    driver.Report{LeftX: 128, LeftY: 128, RightX: 128, RightY: 128},
		},
		{
			name:    "ds4 forward is low y",
			profile: driver.DualShock4,
			in:      stick.Vector{Y: 1},
			want:    driver.Report{LeftX: 128, LeftY: 0, RightX: 128, RightY: 128},
		},
		{
			name:    "ds4 back right",
			profile: driver.DualShock4,
			in:      stick.Vector{X: 1, Y: -1},
			want:    driver.Report{LeftX: 255, LeftY: 255, RightX: 128, RightY: 128},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.Encode(tt.in))
		})
	}
}

func TestMarshalFor(t *testing.T) {
	r := driver.Xbox360.Encode(stick.Vector{X: 1})
	b, err := r.MarshalFor(driver.Xbox360)
	require.NoError(t, err)
	assert.Len(t, b, 14)
	assert.Equal(t, []byte{0xFF, 0x7F}, b[6:8])

	r = driver.DualShock4.Neutral()
	b, err = r.MarshalFor(driver.DualShock4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00}, b)
}

func TestNormalized(t *testing.T) {
	for _, p := range driver.Profiles {
		v := p.Encode(stick.Vector{X: 0.5, Y: -0.5}).Normalized(p)
		assert.InDelta(t, 0.5, v.X, 0.01, p.Name)
		assert.InDelta(t, -0.5, v.Y, 0.01, p.Name)
	}
}
