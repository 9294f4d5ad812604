//go:build windows

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath  = `Software\Microsoft\Windows\CurrentVersion\Run`
	runValueKey = "dmove"
)

// install writes the HKCU Run entry, replaces a running instance started
// from a previous entry and launches the new one.
func install(exePath string, logger *slog.Logger) error {
	previous, err := registeredExe()
	if err != nil {
		return err
	}

	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.ALL_ACCESS)
	if err != nil {
		return err
	}
	defer key.Close()
	value := fmt.Sprintf("%q %s", exePath, strings.Join(autostartArgs, " "))
	if err := key.SetStringValue(runValueKey, value); err != nil {
		return err
	}

	if previous != "" {
		if err := stopInstances(previous, logger); err != nil {
			return fmt.Errorf("failed to stop previous instance: %w", err)
		}
	}
	if err := exec.Command(exePath, autostartArgs...).Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	logger.Info("autorun entry installed", "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	previous, err := registeredExe()
	if err != nil {
		return err
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	switch {
	case errors.Is(err, registry.ErrNotExist):
	case err != nil:
		return err
	default:
		defer key.Close()
		if err := key.DeleteValue(runValueKey); err != nil && !errors.Is(err, registry.ErrNotExist) {
			return err
		}
	}

	if previous != "" {
		if err := stopInstances(previous, logger); err != nil {
			return fmt.Errorf("failed to stop running instance: %w", err)
		}
	}
	logger.Info("autorun entry removed")
	return nil
}

// registeredExe returns the executable of the current Run entry, or "".
func registeredExe() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer key.Close()

	val, _, err := key.GetStringValue(runValueKey)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return exeFromCommandLine(val), nil
}

// exeFromCommandLine extracts the program from a Run value, quoted or not.
func exeFromCommandLine(cmdline string) string {
	s := strings.TrimSpace(cmdline)
	if rest, ok := strings.CutPrefix(s, `"`); ok {
		if exe, _, found := strings.Cut(rest, `"`); found {
			return filepath.Clean(exe)
		}
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return filepath.Clean(fields[0])
}

// stopInstances kills every process other than this one running target.
func stopInstances(target string, logger *slog.Logger) error {
	script := fmt.Sprintf(
		"$ErrorActionPreference='SilentlyContinue';Get-CimInstance Win32_Process | Where-Object { $_.ExecutablePath -eq '%s' } | Select-Object -ExpandProperty ProcessId",
		strings.ReplaceAll(target, "'", "''"),
	)
	out, err := exec.Command("powershell", "-NoProfile", "-Command", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("process query failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	self := os.Getpid()
	for _, line := range strings.Fields(string(out)) {
		pid, err := strconv.Atoi(line)
		if err != nil || pid == self {
			continue
		}
		if out, err := exec.Command("taskkill", "/PID", strconv.Itoa(pid), "/T", "/F").CombinedOutput(); err != nil {
			return fmt.Errorf("taskkill pid %d failed: %w: %s", pid, err, strings.TrimSpace(string(out)))
		}
		logger.Info("terminated running instance", "pid", pid)
	}
	return nil
}
