package xbox360_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/device/xbox360"
)

func TestInputState_Wire(t *testing.T) {
	cases := []struct {
		name     string
		state    xbox360.InputState
		expected []byte
	}{
		{
			name:     "neutral",
			state:    xbox360.InputState{},
			expected: make([]byte, xbox360.InputStateSize),
		},
		{
			name:  "left stick extremes",
			state: xbox360.Sticks(math.MaxInt16, math.MinInt16, 0, 0),
			expected: []byte{
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0xFF, 0x7F, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name:  "buttons and triggers",
			state: xbox360.InputState{Buttons: 0x1001, LT: 0x10, RT: 0xFF, LX: 1234, LY: -2345},
			expected: []byte{
				0x01, 0x10, 0x00, 0x00, 0x10, 0xFF,
				0xD2, 0x04, 0xD7, 0xF6, 0x00, 0x00, 0x00, 0x00,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.state.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, b)

			var back xbox360.InputState
			require.NoError(t, back.UnmarshalBinary(b))
			assert.Equal(t, tc.state, back)
		})
	}
}

func TestInputState_ShortPacket(t *testing.T) {
	var s xbox360.InputState
	assert.Error(t, s.UnmarshalBinary([]byte{0x00, 0x01}))
}

func TestInputState_Report(t *testing.T) {
	r := xbox360.Sticks(-2, 1, 0, 0).Report()
	assert.Len(t, r, xbox360.ReportSize)
	assert.Equal(t, byte(0x14), r[1])
	assert.Equal(t, []byte{0xFE, 0xFF, 0x01, 0x00}, r[6:10])
}
