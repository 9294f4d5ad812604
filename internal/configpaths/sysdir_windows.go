//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDir returns %ProgramData%\dmove, or the user directory when
// ProgramData is unset.
func SystemConfigDir() (string, error) {
	if pd := os.Getenv("ProgramData"); pd != "" {
		return filepath.Join(pd, appDir), nil
	}
	return DefaultConfigDir()
}
