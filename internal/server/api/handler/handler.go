// Package handler implements the control API routes on top of a
// session.Runner.
package handler

import (
	"encoding/json"

	"github.com/dmove/dmove/internal/server/api"
	"github.com/dmove/dmove/session"
)

// Register installs every control route on r.
func Register(r *api.Router, runner *session.Runner, version string) {
	r.Register("ping", Ping(version))
	r.Register("service/start", ServiceStart(runner))
	r.Register("service/stop", ServiceStop(runner))
	r.Register("service/config", ServiceConfig(runner))
	r.Register("service/slot", ServiceSlot(runner))
	r.Register("service/sdkstate", SDKState(runner))
	r.Register("detect/start", DetectStart(runner))
	r.Register("detect/end", DetectEnd(runner))
}

func writeJSON(res *api.Response, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	res.JSON = string(b)
	return nil
}
