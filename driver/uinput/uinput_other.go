//go:build !linux

package uinput

import "log/slog"

func New(Config, *slog.Logger) (*Driver, error) {
	return nil, ErrUnsupported
}
