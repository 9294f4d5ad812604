package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
)

// Server is the line based control API. Every request is one
// "<path> <payload>" line answered by one JSON line; failures are answered
// with {"error": "..."}.
type Server struct {
	addr   string
	ln     net.Listener
	logger *slog.Logger
	router *Router
	config ServerConfig
}

// New creates a server for config.Addr.
func New(config ServerConfig, logger *slog.Logger) *Server {
	return &Server{
		addr:   config.Addr,
		logger: logger.With("component", "api"),
		config: config,
		router: NewRouter(),
	}
}

// Router returns the router so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound address once started.
func (a *Server) Addr() string {
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Start listens and serves in the background.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.ln = ln
	a.logger.Info("API listening", "addr", ln.Addr().String())
	go a.serve()
	return nil
}

// Close stops accepting connections.
func (a *Server) Close() {
	if a.ln != nil {
		_ = a.ln.Close()
	}
}

func (a *Server) serve() {
	for {
		c, err := a.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Error("API accept error", "error", err)
			return
		}
		go a.handleConn(c)
	}
}

func writeError(w io.Writer, msg string) {
	b, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Fprintf(w, "%s\n", b)
}

func writeOK(w io.Writer, rest string) {
	fmt.Fprintf(w, "%s\n", rest)
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				connLogger.Error("read api line", "error", err)
			}
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		path := strings.ToLower(fields[0])
		connLogger.Debug("api cmd", "path", path)

		if h, params := a.router.Match(path); h != nil {
			req := &Request{Ctx: connCtx, Params: params, Args: fields[1:]}
			res := &Response{}
			if err := h(req, res, connLogger); err != nil {
				connLogger.Error("api handler error", "path", path, "error", err)
				writeError(conn, err.Error())
				continue
			}
			writeOK(conn, res.JSON)
			continue
		}
		if sh, params := a.router.MatchStream(path); sh != nil {
			connLogger.Info("api stream begin", "path", path)
			if err := sh(conn, params, connLogger); err != nil {
				connLogger.Error("api stream handler error", "path", path, "error", err)
			}
			connLogger.Info("api stream end", "path", path)
			return
		}
		connLogger.Error("api unknown path", "path", path)
		writeError(conn, "unknown path")
	}
}
