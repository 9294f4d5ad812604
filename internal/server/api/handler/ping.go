package handler

import (
	"log/slog"

	"github.com/dmove/dmove/apitypes"
	"github.com/dmove/dmove/internal/server/api"
)

// ServerName identifies dmove in ping responses.
const ServerName = "dmove"

// Ping returns a handler for the "ping" endpoint.
func Ping(version string) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		return writeJSON(res, apitypes.PingResponse{Server: ServerName, Version: version})
	}
}
