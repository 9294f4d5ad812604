package handler

import (
	"log/slog"

	"github.com/dmove/dmove/apitypes"
	"github.com/dmove/dmove/internal/server/api"
	"github.com/dmove/dmove/session"
)

// DetectStart handles "detect/start".
func DetectStart(runner *session.Runner) api.HandlerFunc {
	return detect(runner, true)
}

// DetectEnd handles "detect/end".
func DetectEnd(runner *session.Runner) api.HandlerFunc {
	return detect(runner, false)
}

func detect(runner *session.Runner, enabled bool) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		runner.SetDetectionMode(enabled)
		return writeJSON(res, apitypes.DetectResponse{Detecting: runner.Detecting()})
	}
}
