//go:build !windows

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const desktopEntryName = "dmove.desktop"

func autostartPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart", desktopEntryName), nil
}

func desktopEntry(exePath string) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=dmove
Comment=Keyboard to left stick
Exec=%q %s
Terminal=false
X-GNOME-Autostart-enabled=true
`, exePath, strings.Join(autostartArgs, " "))
}

// install writes an XDG autostart entry for the current user.
func install(exePath string, logger *slog.Logger) error {
	path, err := autostartPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(desktopEntry(exePath)), 0o644); err != nil {
		return err
	}
	logger.Info("autostart entry installed", "path", path, "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	path, err := autostartPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	logger.Info("autostart entry removed", "path", path)
	return nil
}
