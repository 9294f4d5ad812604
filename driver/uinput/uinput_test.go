package uinput

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/stick"
)

type fakePad struct {
	left   [][2]float32
	closed bool
}

func (f *fakePad) LeftStickMove(x, y float32) error {
	f.left = append(f.left, [2]float32{x, y})
	return nil
}

func (f *fakePad) RightStickMove(float32, float32) error { return nil }

func (f *fakePad) Close() error {
	f.closed = true
	return nil
}

func TestDriver(t *testing.T) {
	fp := &fakePad{}
	var gotName string
	var gotVendor uint16
	d := &Driver{
		cfg: Config{Device: "/dev/uinput"},
		create: func(path string, name []byte, vendor, product uint16) (pad, error) {
			gotName, gotVendor = string(name), vendor
			return fp, nil
		},
		logger: slog.Default(),
	}

	_, err := d.AddTarget(driver.DualShock4)
	assert.ErrorIs(t, err, driver.ErrNotConnected)

	require.NoError(t, d.Connect())
	tgt, err := d.AddTarget(driver.DualShock4)
	require.NoError(t, err)
	assert.Equal(t, "dmove ds4", gotName)
	assert.Equal(t, driver.DualShock4.VendorID, gotVendor)

	_, ok := tgt.Slot()
	assert.False(t, ok)

	require.NoError(t, tgt.Update(driver.DualShock4.Encode(stick.Vector{X: 0, Y: 1})))
	require.Len(t, fp.left, 1)
	assert.InDelta(t, 0, fp.left[0][0], 0.01)
	assert.InDelta(t, -1, fp.left[0][1], 0.01)

	require.NoError(t, d.RemoveTarget(tgt))
	assert.True(t, fp.closed)
	require.NoError(t, d.Disconnect())
}
