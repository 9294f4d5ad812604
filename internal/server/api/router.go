package api

import (
	"context"
	"log/slog"
	"net"
	"strings"
)

// Request is one parsed command line.
type Request struct {
	Ctx    context.Context
	Params map[string]string
	Args   []string
}

// Payload returns the arguments joined back into the original payload text.
func (r *Request) Payload() string {
	return strings.Join(r.Args, " ")
}

// Response carries the JSON line written back on success.
type Response struct {
	JSON string
}

// HandlerFunc handles a request/response route.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

// StreamHandlerFunc takes ownership of the connection after its opening line.
type StreamHandlerFunc func(conn net.Conn, params map[string]string, logger *slog.Logger) error

type route[H any] struct {
	segments []string
	handler  H
}

// Router matches slash separated paths. Segments in braces capture the
// corresponding path segment.
type Router struct {
	routes  []route[HandlerFunc]
	streams []route[StreamHandlerFunc]
}

func NewRouter() *Router { return &Router{} }

// Register adds a request/response route.
func (r *Router) Register(pattern string, h HandlerFunc) {
	r.routes = append(r.routes, route[HandlerFunc]{segments: split(pattern), handler: h})
}

// RegisterStream adds a streaming route.
func (r *Router) RegisterStream(pattern string, h StreamHandlerFunc) {
	r.streams = append(r.streams, route[StreamHandlerFunc]{segments: split(pattern), handler: h})
}

// Match returns the handler and path params for path, or nil.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	return match(r.routes, path)
}

// MatchStream returns the stream handler and path params for path, or nil.
func (r *Router) MatchStream(path string) (StreamHandlerFunc, map[string]string) {
	return match(r.streams, path)
}

func split(p string) []string {
	return strings.Split(strings.Trim(strings.ToLower(p), "/"), "/")
}

func match[H any](routes []route[H], path string) (H, map[string]string) {
	parts := split(path)
	for _, rt := range routes {
		if len(rt.segments) != len(parts) {
			continue
		}
		params := map[string]string{}
		ok := true
		for i, seg := range rt.segments {
			if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
				params[seg[1:len(seg)-1]] = parts[i]
				continue
			}
			if seg != parts[i] {
				ok = false
				break
			}
		}
		if ok {
			return rt.handler, params
		}
	}
	var zero H
	return zero, nil
}
