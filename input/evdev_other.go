//go:build !linux

package input

import "log/slog"

type EvdevReader struct{}

func OpenEvdev(string, *slog.Logger) (*EvdevReader, error) {
	return nil, ErrUnsupported
}

func (*EvdevReader) Run(func(KeyEvent)) error { return ErrUnsupported }

func (*EvdevReader) Close() error { return nil }
