package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enerscan/resload/internal/domain/series"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataRoot)
	assert.Equal(t, "out", cfg.OutDir)

	opts := cfg.IngestOptions()
	assert.Equal(t, ';', opts.Delimiter)
	assert.True(t, opts.DecimalComma)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
data_root: /srv/opsd
out_dir: /tmp/resload
csv:
  delimiter: ","
  decimal_comma: false
normalization:
  load: 500
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/opsd", cfg.DataRoot)
	assert.Equal(t, ',', cfg.IngestOptions().Delimiter)
	assert.False(t, cfg.IngestOptions().DecimalComma)

	loader, err := cfg.NewLoader()
	require.NoError(t, err)
	assert.NotNil(t, loader)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RESLOAD_DATA_ROOT", "/mnt/weather-years")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/weather-years", cfg.DataRoot)
}

func TestLoad_RejectsBadDelimiter(t *testing.T) {
	path := writeConfig(t, `
data_root: data
out_dir: out
csv:
  delimiter: ";;"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoad_RejectsUnknownNormalizationTechnology(t *testing.T) {
	path := writeConfig(t, `
data_root: data
out_dir: out
csv:
  delimiter: ";"
normalization:
  hydro: 10
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hydro")
}

func TestNormalizationOverridesDefaults(t *testing.T) {
	cfg := Default()
	cfg.Normalization = map[string]float64{"solar": 250}

	divisors, err := cfg.normalization()
	require.NoError(t, err)
	assert.Equal(t, 250.0, divisors[series.Solar])
	assert.Equal(t, 1000.0, divisors[series.Load], "unset entries keep defaults")
}
