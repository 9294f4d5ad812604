// Package configpaths resolves where dmove looks for its configuration files.
package configpaths

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const appDir = "dmove"

// CLIConfigBase is the base name of the CLI flag configuration file.
const CLIConfigBase = "dmove"

// ServiceConfigBase is the base name of the controller service document.
const ServiceConfigBase = "service"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir), nil
}

// searchDirs returns the user directory followed by the system directory.
func searchDirs() []string {
	var dirs []string
	if d, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, d)
	}
	if d, err := SystemConfigDir(); err == nil && !slices.Contains(dirs, d) {
		dirs = append(dirs, d)
	}
	return dirs
}

// ConfigCandidatePaths returns the CLI configuration files to try, split by
// format. An explicit user path is tried first, in the list matching its
// extension.
func ConfigCandidatePaths(user string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if user != "" {
		switch strings.ToLower(filepath.Ext(user)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, user)
		case ".toml":
			tomlPaths = append(tomlPaths, user)
		default:
			jsonPaths = append(jsonPaths, user)
		}
	}
	for _, d := range searchDirs() {
		base := filepath.Join(d, CLIConfigBase)
		jsonPaths = append(jsonPaths, base+".json")
		yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
		tomlPaths = append(tomlPaths, base+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}

// ServiceConfigPath returns the first existing service document in the
// search directories, or "" when there is none.
func ServiceConfigPath() string {
	for _, d := range searchDirs() {
		for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
			p := filepath.Join(d, ServiceConfigBase+ext)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p
			}
		}
	}
	return ""
}
