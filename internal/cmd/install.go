package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Install registers dmove to start with the user session.
type Install struct{}

// Uninstall removes the startup entry.
type Uninstall struct{}

func (c *Install) Run(logger *slog.Logger) error {
	exe, err := currentExecutable()
	if err != nil {
		return err
	}
	return install(exe, logger)
}

func (c *Uninstall) Run(logger *slog.Logger) error {
	if _, err := currentExecutable(); err != nil {
		return err
	}
	return uninstall(logger)
}

// autostartArgs are the arguments the startup entry passes to dmove.
var autostartArgs = []string{"run", "--tray"}

func currentExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if strings.Contains(exe, "go-build") {
		return "", errors.New("cannot install from 'go run'")
	}
	return filepath.Abs(exe)
}
