// Package testing holds helpers shared by the API and command tests.
package testing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/dmove/dmove/internal/server/api"
)

// StartAPIServer starts an API server on a free loopback port and calls
// register so the test can install the handlers it needs. It returns the
// address and a function to call when done.
func StartAPIServer(t *testing.T, register func(r *api.Router)) (addr string, done func()) {
	t.Helper()
	apiSrv := api.New(api.ServerConfig{Addr: "127.0.0.1:0"}, slog.Default())
	if register != nil {
		register(apiSrv.Router())
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}
	done = func() {
		apiSrv.Close()
		time.Sleep(10 * time.Millisecond)
	}
	return apiSrv.Addr(), done
}

// ExecCmd dials addr, sends cmd and returns the response line without its
// newline. Client errors call t.Fatalf.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()
	_, _ = fmt.Fprintf(c, "%s\n", cmd)
	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}
	return strings.TrimSuffix(line, "\n")
}

// ExecuteLine routes one command line through r without networking and
// returns what the server would write back.
func ExecuteLine(t *testing.T, r *api.Router, line string) string {
	t.Helper()
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return jsonError("empty")
	}
	h, params := r.Match(strings.ToLower(fields[0]))
	if h == nil {
		return jsonError("unknown path")
	}
	req := &api.Request{Params: params, Args: fields[1:]}
	res := &api.Response{}
	if err := h(req, res, slog.Default()); err != nil {
		return jsonError(err.Error())
	}
	return res.JSON
}

func jsonError(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}
