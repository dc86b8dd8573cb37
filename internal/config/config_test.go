package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHelperCommand, cfg.HelperCommand)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, DefaultACN, cfg.DefaultACN)
	assert.Equal(t, DefaultAccount, cfg.DefaultAccount)
	assert.Equal(t, DefaultVoltageBasis, cfg.VoltageBasis)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	assert.True(t, cfg.Output.Color)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
helper_command: my_curl.sh
voltage_basis: 240
tier_high_amps: 20
output:
  color: false
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my_curl.sh", cfg.HelperCommand)
	assert.Equal(t, 240.0, cfg.VoltageBasis)
	assert.Equal(t, 20.0, cfg.TierHighAmps)
	assert.False(t, cfg.Output.Color)
	// Unset keys keep defaults.
	assert.Equal(t, DefaultAccount, cfg.DefaultAccount)
}

func TestClassifyOptions(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	opts := cfg.ClassifyOptions(1.5)
	assert.Equal(t, 1.5, opts.MicroThresholdKWh)
	assert.Equal(t, DefaultVoltageBasis, opts.VoltageBasis)
	assert.Equal(t, DefaultTierHighAmps, opts.TierHighAmps)
	assert.Equal(t, DefaultTierMedAmps, opts.TierMedAmps)
}
