package configpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCandidatePaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		user               string
		wantJSON, wantYAML string
		wantTOML           string
	}{
		{user: "/tmp/a.yml", wantYAML: "/tmp/a.yml"},
		{user: "/tmp/a.TOML", wantTOML: "/tmp/a.TOML"},
		{user: "/tmp/a.conf", wantJSON: "/tmp/a.conf"},
	}
	for _, tt := range tests {
		j, y, tm := ConfigCandidatePaths(tt.user)
		switch {
		case tt.wantJSON != "":
			assert.Equal(t, tt.wantJSON, j[0])
		case tt.wantYAML != "":
			assert.Equal(t, tt.wantYAML, y[0])
		case tt.wantTOML != "":
			assert.Equal(t, tt.wantTOML, tm[0])
		}
	}

	j, y, tm := ConfigCandidatePaths("")
	require.NotEmpty(t, j)
	assert.Equal(t, "dmove.json", filepath.Base(j[0]))
	assert.Len(t, y, 2*len(j))
	assert.Len(t, tm, len(j))
}

func TestServiceConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	dir, err := DefaultConfigDir()
	require.NoError(t, err)
	assert.Empty(t, ServiceConfigPath())

	require.NoError(t, os.MkdirAll(dir, 0o755))
	p := filepath.Join(dir, "service.yaml")
	require.NoError(t, os.WriteFile(p, []byte("profile: ds4\n"), 0o644))
	assert.Equal(t, p, ServiceConfigPath())
}
