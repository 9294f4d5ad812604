package handler

import (
	"errors"
	"log/slog"

	"github.com/dmove/dmove/apitypes"
	"github.com/dmove/dmove/config"
	"github.com/dmove/dmove/internal/server/api"
	"github.com/dmove/dmove/session"
)

func serviceResponse(runner *session.Runner) apitypes.ServiceResponse {
	resp := apitypes.ServiceResponse{State: runner.State().String()}
	if runner.State() == session.Connected {
		resp.Profile = runner.Session().Profile().Name
	}
	return resp
}

// payloadConfig parses the request payload, falling back to the runner's
// current configuration when there is none.
func payloadConfig(req *api.Request, runner *session.Runner) (config.Configuration, error) {
	p := req.Payload()
	if p == "" {
		return runner.Config(), nil
	}
	return config.ParseJSON([]byte(p))
}

// ServiceStart handles "service/start [config-json]".
func ServiceStart(runner *session.Runner) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		cfg, err := payloadConfig(req, runner)
		if err != nil {
			return err
		}
		if err := runner.Start(cfg); err != nil {
			return err
		}
		logger.Info("service started via API")
		return writeJSON(res, serviceResponse(runner))
	}
}

// ServiceStop handles "service/stop".
func ServiceStop(runner *session.Runner) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		if err := runner.Stop(); err != nil {
			return err
		}
		return writeJSON(res, serviceResponse(runner))
	}
}

// ServiceConfig handles "service/config <config-json>".
func ServiceConfig(runner *session.Runner) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, _ *slog.Logger) error {
		if req.Payload() == "" {
			return errors.New("missing configuration payload")
		}
		cfg, err := config.ParseJSON([]byte(req.Payload()))
		if err != nil {
			return err
		}
		if err := runner.SetConfig(cfg); err != nil && !errors.Is(err, session.ErrReportWrite) {
			return err
		}
		return writeJSON(res, serviceResponse(runner))
	}
}

// ServiceSlot handles "service/slot".
func ServiceSlot(runner *session.Runner) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		slot, ok := runner.Slot()
		return writeJSON(res, apitypes.SlotResponse{Slot: slot, Found: ok})
	}
}

// SDKState handles "service/sdkstate".
func SDKState(runner *session.Runner) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		return writeJSON(res, apitypes.SDKStateResponse{Type: runner.SourceState().String()})
	}
}
