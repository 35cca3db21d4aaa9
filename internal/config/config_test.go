package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 900, cfg.Server.CacheMaxAgeSec)
	assert.Equal(t, ".NS", cfg.Market.Suffix)
	assert.Equal(t, 30, cfg.Market.HistoryDays)
	assert.Equal(t, 14, cfg.Market.RSIWindow)
	assert.Equal(t, 500, cfg.Market.DelayMS)
	assert.Equal(t, DefaultFallbackSymbols, cfg.Symbols.Fallback)
	assert.True(t, cfg.Pledge.Enabled)
	assert.Equal(t, "https://www.screener.in", cfg.Pledge.BaseURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
market:
  suffix: ".BO"
  delay_ms: 300
symbols:
  fallback: ["RELIANCE", "TCS"]
`), 0o644))

	t.Setenv("PORT", "9100")
	t.Setenv("SYMBOLS_FALLBACK", "INFY, SBIN")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port) // env wins over file
	assert.Equal(t, ".BO", cfg.Market.Suffix)
	assert.Equal(t, 300, cfg.Market.DelayMS)
	assert.Equal(t, []string{"INFY", "SBIN"}, cfg.Symbols.Fallback)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	cfg.Market.RSIWindow = 0
	assert.Error(t, cfg.Validate())

	cfg.Market.RSIWindow = 14
	cfg.Symbols.Fallback = nil
	assert.Error(t, cfg.Validate())
}
