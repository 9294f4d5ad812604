package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/apiclient"
	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/internal/monitor"
	"github.com/dmove/dmove/internal/server/api"
	"github.com/dmove/dmove/internal/server/api/handler"
	itesting "github.com/dmove/dmove/internal/testing"
	"github.com/dmove/dmove/session"
	"github.com/dmove/dmove/stick"
)

func TestCtl_Commands(t *testing.T) {
	runner, drv := itesting.NewRunner(t, itesting.NewKeys(), nil)
	addr, done := itesting.StartAPIServer(t, func(r *api.Router) {
		handler.Register(r, runner, "test")
	})
	defer done()

	svc := writeServiceConfig(t, "service.toml", "profile = \"ds4\"\n")

	steps := []struct {
		command string
		payload string
		want    []string
		wantErr string
	}{
		{command: "ping", want: []string{`"server": "dmove"`, `"version": "test"`}},
		{command: "start", payload: "@" + svc, want: []string{`"state": "Connected"`, `"profile": "ds4"`}},
		{command: "slot", want: []string{`"found": true`}},
		{command: "config", payload: `{"advancedStrafeEnabled":true}`, want: []string{`"state": "Connected"`}},
		{command: "config", wantErr: "config requires a payload"},
		{command: "config", payload: `{"advancedStrafeEnabled":`, wantErr: "not valid JSON"},
		{command: "detect-start", want: []string{`"detecting": true`}},
		{command: "detect-end", want: []string{`"detecting": false`}},
		{command: "sdkstate", want: []string{`"type": "Uninitialized"`}},
		{command: "stop", want: []string{`"state": "Uninitialized"`}},
	}
	for _, st := range steps {
		var buf bytes.Buffer
		c := Ctl{Addr: addr, Timeout: 2 * time.Second, Command: st.command, Payload: st.payload, out: &buf}
		err := c.Run(slog.Default())
		if st.wantErr != "" {
			require.Error(t, err, st.command)
			assert.Contains(t, err.Error(), st.wantErr)
			continue
		}
		require.NoError(t, err, st.command)
		for _, w := range st.want {
			assert.Contains(t, buf.String(), w, st.command)
		}
	}
	assert.Equal(t, driver.DualShock4, drv.Targets()[0].Profile)
	assert.True(t, runner.Config().AdvancedStrafeEnabled)
}

type lineSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *lineSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, strings.TrimSpace(string(p)))
	return len(p), nil
}

func (s *lineSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func TestWatch(t *testing.T) {
	hub := monitor.New(slog.Default())
	addr, done := itesting.StartAPIServer(t, func(r *api.Router) {
		r.RegisterStream("monitor/stream", hub.ServeStream)
	})
	defer done()

	ctx, cancel := context.WithCancel(context.Background())
	sink := &lineSink{}
	errCh := make(chan error, 1)
	go func() { errCh <- watch(ctx, apiclient.New(addr), sink) }()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, 2*time.Second, 5*time.Millisecond)
	v := stick.Vector{X: 1}
	hub.Observe(session.Sample{Vector: v, Report: driver.Xbox360.Encode(v), Profile: driver.Xbox360})

	require.Eventually(t, func() bool { return len(sink.Lines()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.JSONEq(t, `{"x":1,"y":0,"lx":32767,"ly":0}`, sink.Lines()[0])

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return")
	}
}
