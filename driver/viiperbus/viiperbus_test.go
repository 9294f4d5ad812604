package viiperbus_test

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/apiclient"
	"github.com/dmove/dmove/device/xbox360"
	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/driver/viiperbus"
)

// fakeServer answers the VIIPER line protocol and captures device stream
// packets.
type fakeServer struct {
	ln      net.Listener
	buses   string
	mu      sync.Mutex
	cmds    []string
	packets chan []byte
}

func startFakeServer(t *testing.T, buses string) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeServer{ln: ln, buses: buses, packets: make(chan []byte, 16)}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *fakeServer) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(c)
	}
}

func (s *fakeServer) handle(c net.Conn) {
	defer c.Close()
	r := bufio.NewReader(c)
	line, err := r.ReadString('\n')
	if err != nil {
		return
	}
	line = strings.TrimSpace(line)
	s.mu.Lock()
	s.cmds = append(s.cmds, line)
	s.mu.Unlock()

	path, arg, _ := strings.Cut(line, " ")
	switch {
	case path == "bus/list":
		_, _ = io.WriteString(c, `{"buses":`+s.buses+"}\n")
	case path == "bus/create" || path == "bus/remove":
		_, _ = io.WriteString(c, `{"busId":`+arg+"}\n")
	case strings.HasSuffix(path, "/add"):
		_, _ = io.WriteString(c, `{"id":"1-1"}`+"\n")
	case strings.HasSuffix(path, "/remove"):
		_, _ = io.WriteString(c, `{"busId":1,"devId":"`+arg+`"}`+"\n")
	case path == "bus/1/1":
		for {
			buf := make([]byte, xbox360.InputStateSize)
			if _, err := io.ReadFull(r, buf); err != nil {
				return
			}
			s.packets <- buf
		}
	default:
		_, _ = io.WriteString(c, `{"error":"unknown path"}`+"\n")
	}
}

func (s *fakeServer) commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cmds...)
}

func newDriver(s *fakeServer) *viiperbus.Driver {
	cfg := viiperbus.Config{Addr: s.ln.Addr().String(), BusID: 1}
	return viiperbus.New(nil, cfg, slog.Default())
}

func TestDriver_Lifecycle(t *testing.T) {
	s := startFakeServer(t, "[]")
	d := newDriver(s)

	_, err := d.AddTarget(driver.Xbox360)
	assert.ErrorIs(t, err, driver.ErrNotConnected)

	require.NoError(t, d.Connect())
	tgt, err := d.AddTarget(driver.Xbox360)
	require.NoError(t, err)

	slot, ok := tgt.Slot()
	assert.True(t, ok)
	assert.Equal(t, uint32(0), slot)

	require.NoError(t, tgt.Update(driver.Report{LeftX: 100, LeftY: -200}))
	select {
	case pkt := <-s.packets:
		var st xbox360.InputState
		require.NoError(t, st.UnmarshalBinary(pkt))
		assert.Equal(t, int16(100), st.LX)
		assert.Equal(t, int16(-200), st.LY)
	case <-time.After(2 * time.Second):
		t.Fatal("no packet received")
	}

	require.NoError(t, d.RemoveTarget(tgt))
	require.NoError(t, d.Disconnect())

	assert.Equal(t, []string{
		"bus/list",
		"bus/create 1",
		"bus/1/add xbox360",
		"bus/1/1",
		"bus/1/remove 1",
		"bus/remove 1",
	}, s.commands())
}

func TestDriver_ReusesExistingBus(t *testing.T) {
	s := startFakeServer(t, "[1]")
	d := newDriver(s)

	require.NoError(t, d.Connect())
	require.NoError(t, d.Disconnect())
	assert.Equal(t, []string{"bus/list"}, s.commands())
}

func TestDriver_ConnectFailure(t *testing.T) {
	ms := apiclient.NewMockTransport(func(string, any, map[string]string) (string, error) {
		return `{"error":"server busy"}`, nil
	})
	d := viiperbus.New(apiclient.WithTransport(ms), viiperbus.Config{BusID: 1}, slog.Default())
	err := d.Connect()
	assert.ErrorContains(t, err, "server busy")
}

func TestDriver_FailedStreamRemovesDevice(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	ms := apiclient.NewMockTransport(func(path string, _ any, _ map[string]string) (string, error) {
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
		switch path {
		case "bus/list":
			return `{"buses":[1]}`, nil
		case "bus/{id}/add":
			return `{"id":"1-3"}`, nil
		case "bus/{id}/remove":
			return `{"error":"device busy"}`, nil
		}
		return `{"error":"unknown path"}`, nil
	})
	var logs bytes.Buffer
	d := viiperbus.New(apiclient.WithTransport(ms), viiperbus.Config{BusID: 1}, slog.New(slog.NewTextHandler(&logs, nil)))

	require.NoError(t, d.Connect())
	_, err := d.AddTarget(driver.Xbox360)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add xbox360 device")

	mu.Lock()
	assert.Equal(t, []string{"bus/list", "bus/{id}/add", "bus/{id}/remove"}, paths)
	mu.Unlock()
	assert.Contains(t, logs.String(), "remove device after failed stream open")
	assert.Contains(t, logs.String(), "device busy")
}
