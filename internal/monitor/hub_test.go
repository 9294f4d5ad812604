package monitor

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/apitypes"
	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/session"
	"github.com/dmove/dmove/stick"
)

func sample(x, y float64) session.Sample {
	v := stick.Vector{X: x, Y: y}
	return session.Sample{Vector: v, Report: driver.Xbox360.Encode(v), Profile: driver.Xbox360}
}

func TestHub_WebSocket(t *testing.T) {
	h := New(slog.Default())
	srv := httptest.NewServer(h)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	h.Observe(sample(0, 1))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var r apitypes.Report
	require.NoError(t, json.Unmarshal(msg, &r))
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 1.0, r.Y)
	assert.Equal(t, int32(32767), r.LY)

	conn.Close()
	assert.Eventually(t, func() bool { return h.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_StreamReplaysLastReport(t *testing.T) {
	h := New(slog.Default())
	h.Observe(sample(1, 0))

	server, client := net.Pipe()
	done := make(chan error, 1)
	go func() { done <- h.ServeStream(server, nil, slog.Default()) }()

	r := bufio.NewReader(client)
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1,"y":0,"lx":32767,"ly":0}`, strings.TrimSpace(line))

	h.Observe(sample(0, 0))
	line, err = r.ReadString('\n')
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":0,"y":0,"lx":0,"ly":0}`, strings.TrimSpace(line))

	client.Close()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not return")
	}
	assert.Equal(t, 0, h.Subscribers())
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	h := New(slog.Default())
	c := h.subscribe()
	for i := 0; i <= sendBuffer; i++ {
		h.Observe(sample(0, 0))
	}
	assert.Equal(t, 0, h.Subscribers())
	n := 0
	for range c.send {
		n++
	}
	assert.Equal(t, sendBuffer, n)
	h.unsubscribe(c)
}
