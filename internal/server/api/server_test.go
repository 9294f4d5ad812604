package api_test

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmove/dmove/internal/server/api"
	th "github.com/dmove/dmove/internal/testing"
)

func TestRouter_Match(t *testing.T) {
	r := api.NewRouter()
	r.Register("ping", func(*api.Request, *api.Response, *slog.Logger) error { return nil })
	r.Register("bus/{id}/add", func(*api.Request, *api.Response, *slog.Logger) error { return nil })
	r.RegisterStream("monitor/stream", func(net.Conn, map[string]string, *slog.Logger) error { return nil })

	h, params := r.Match("bus/7/add")
	require.NotNil(t, h)
	assert.Equal(t, map[string]string{"id": "7"}, params)

	h, _ = r.Match("PING")
	assert.NotNil(t, h)

	h, _ = r.Match("bus/7")
	assert.Nil(t, h)

	sh, _ := r.MatchStream("monitor/stream")
	assert.NotNil(t, sh)
	h, _ = r.Match("monitor/stream")
	assert.Nil(t, h)
}

func TestServer_Lines(t *testing.T) {
	addr, done := th.StartAPIServer(t, func(r *api.Router) {
		r.Register("echo", func(req *api.Request, res *api.Response, _ *slog.Logger) error {
			res.JSON = fmt.Sprintf(`{"payload":%q}`, req.Payload())
			return nil
		})
		r.Register("fail", func(*api.Request, *api.Response, *slog.Logger) error {
			return errors.New("boom")
		})
	})
	defer done()

	assert.Equal(t, `{"payload":"a b"}`, th.ExecCmd(t, addr, "echo a b"))
	assert.Equal(t, `{"error":"boom"}`, th.ExecCmd(t, addr, "fail"))
	assert.Equal(t, `{"error":"unknown path"}`, th.ExecCmd(t, addr, "nope"))
}

func TestServer_MultipleCommandsPerConnection(t *testing.T) {
	addr, done := th.StartAPIServer(t, func(r *api.Router) {
		r.Register("ping", func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
			res.JSON = `{}`
			return nil
		})
	})
	defer done()

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	r := bufio.NewReader(c)
	for i := 0; i < 3; i++ {
		_, err := fmt.Fprint(c, "ping\n")
		require.NoError(t, err)
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "{}\n", line)
	}
}

func TestServer_StreamOwnsConnection(t *testing.T) {
	addr, done := th.StartAPIServer(t, func(r *api.Router) {
		r.RegisterStream("monitor/stream", func(conn net.Conn, _ map[string]string, _ *slog.Logger) error {
			_, err := fmt.Fprint(conn, "one\ntwo\n")
			return err
		})
	})
	defer done()

	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_, err = fmt.Fprint(c, "monitor/stream\n")
	require.NoError(t, err)

	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	r := bufio.NewReader(c)
	for _, want := range []string{"one\n", "two\n"} {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, want, line)
	}
	_, err = r.ReadString('\n')
	assert.Error(t, err, "server closes the stream when the handler returns")
}
