package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/on-the-ground/teatui/config"
	"github.com/on-the-ground/teatui/tea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teatui.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
effects:
  mode: partitioned
  workers: 4
log:
  file: /tmp/teatui.log
  level: debug
metrics:
  addr: ":9090"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, tea.EffectsConfig{Mode: tea.EffectsPartitioned, Workers: 4, BufferSize: 1}, cfg.Effects)
	assert.Equal(t, "/tmp/teatui.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_UnknownEffectsModeFails(t *testing.T) {
	path := writeFile(t, "effects:\n  mode: parallel\n")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "parallel")
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := writeFile(t, "effects: [")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "parse config")
}
