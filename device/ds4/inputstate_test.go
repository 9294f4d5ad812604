package ds4_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/device/ds4"
)

func TestInputState_Wire(t *testing.T) {
	cases := []struct {
		name     string
		state    ds4.InputState
		expected []byte
	}{
		{
			name:     "neutral",
			state:    ds4.Neutral(),
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00},
		},
		{
			name:     "up right",
			state:    ds4.InputState{LX: 0xFF, LY: 0x00, RX: 0x80, RY: 0x80, Buttons: 0x0028, L2: 1, R2: 2},
			expected: []byte{0xFF, 0x00, 0x80, 0x80, 0x28, 0x00, 0x01, 0x02},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.state.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, b)

			var back ds4.InputState
			require.NoError(t, back.UnmarshalBinary(b))
			assert.Equal(t, tc.state, back)
		})
	}
}

func TestInputState_ShortPacket(t *testing.T) {
	var s ds4.InputState
	assert.Error(t, s.UnmarshalBinary(make([]byte, ds4.InputStateSize-1)))
}
