package tray

import (
	"bytes"
	"errors"
	"image/png"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	enabled   bool
	enableErr error
}

func (f *fakeService) Enable() error {
	if f.enableErr != nil {
		return f.enableErr
	}
	f.enabled = true
	return nil
}

func (f *fakeService) Disable() error {
	f.enabled = false
	return nil
}

func (f *fakeService) Enabled() bool { return f.enabled }

func TestToggle(t *testing.T) {
	svc := &fakeService{}
	tr := New(svc, func() {}, slog.Default())
	var dialogs []string
	tr.notify = func(_, msg string) { dialogs = append(dialogs, msg) }

	assert.True(t, tr.toggle())
	assert.False(t, tr.toggle())

	svc.enableErr = errors.New("driver missing")
	assert.False(t, tr.toggle())
	assert.Equal(t, []string{"driver missing"}, dialogs)
}

func TestQuit_RunsShutdownOnce(t *testing.T) {
	calls := 0
	tr := New(&fakeService{}, func() { calls++ }, slog.Default())
	assert.True(t, tr.quit())
	assert.False(t, tr.quit())
	assert.Equal(t, 1, calls)
}

func TestIcon(t *testing.T) {
	data := Icon()
	require.NotEmpty(t, data)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())
	assert.Equal(t, iconSize, img.Bounds().Dy())
}
