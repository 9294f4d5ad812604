package session_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/config"
	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/session"
	"github.com/dmove/dmove/stick"
)

func TestRunner_Lifecycle(t *testing.T) {
	f := newFixture(t, nil)
	r := session.NewRunner(f.s, 0, slog.Default())
	assert.False(t, r.Running())

	require.NoError(t, r.Start(config.Default()))
	require.NoError(t, r.Start(config.Default()))
	assert.True(t, r.Running())
	assert.Len(t, f.drv.Targets(), 1)

	f.keys.press(config.KeyD)
	want := driver.Xbox360.Encode(stick.Vector{X: 1})
	assert.Eventually(t, func() bool {
		rs := f.drv.Last().Reports()
		return rs[len(rs)-1] == want
	}, time.Second, time.Millisecond)

	r.SetDetectionMode(true)
	assert.True(t, r.Detecting())
	r.SetDetectionMode(false)

	slot, ok := r.Slot()
	assert.True(t, ok)
	assert.Equal(t, uint32(0), slot)

	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())
	assert.False(t, r.Running())
	assert.Equal(t, session.Uninitialized, r.State())
	assert.True(t, f.drv.Last().Removed())
}

func TestRunner_StartFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.drv.ConnectErr = errors.New("no bus")
	r := session.NewRunner(f.s, time.Millisecond, slog.Default())

	assert.ErrorIs(t, r.Start(config.Default()), session.ErrDriverConnection)
	assert.False(t, r.Running())
	assert.NoError(t, r.Stop())
}
