//go:build linux

package uinput

import (
	"log/slog"

	"github.com/bendahl/uinput"
)

// New returns a driver creating gamepads on cfg.Device.
func New(cfg Config, logger *slog.Logger) (*Driver, error) {
	return &Driver{
		cfg: cfg,
		create: func(path string, name []byte, vendor, product uint16) (pad, error) {
			return uinput.CreateGamepad(path, name, vendor, product)
		},
		logger: logger.With("component", "uinput"),
	}, nil
}
