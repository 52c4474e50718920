package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goliq/internal/liquefaction"
)

func TestDefaultConfigResolves(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	p, err := liquefaction.ResolveJRA(cfg.JRA, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.50*0.8, p.Khgl, 1e-12)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().JRA, cfg.JRA)
	assert.Equal(t, liquefaction.MethodJRA, cfg.Method)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goliq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
method: JRA
jra:
  year: 2012
  eq_level: 1
  is_given_khgl: true
  khgl: 0.18
ground_water_level: 1.5
soil_table: soils.yaml
cache:
  enabled: false
batch:
  jobs: 3
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2012, *cfg.JRA.Year)
	assert.Equal(t, 1, *cfg.JRA.EQLevel)
	assert.True(t, *cfg.JRA.IsGivenKhgl)
	assert.Equal(t, 0.18, *cfg.JRA.Khgl)
	require.NotNil(t, cfg.GroundWaterLevel)
	assert.Equal(t, 1.5, *cfg.GroundWaterLevel)
	assert.Equal(t, "soils.yaml", cfg.SoilTable)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 3, cfg.Batch.Jobs)
	// untouched keys keep their defaults
	assert.Equal(t, "C", *cfg.JRA.RegionalClass)
	assert.Equal(t, "*.XML", cfg.Batch.Pattern)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jra: [1, 2"), 0644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "goliq.yaml")
	cfg := DefaultConfig()
	cfg.Batch.Jobs = 2
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("method parameters", func(t *testing.T) {
		t.Setenv("GOLIQ_YEAR", "2012")
		t.Setenv("GOLIQ_EQ_LEVEL", "1")
		t.Setenv("GOLIQ_REGIONAL_CLASS", "b2")
		t.Setenv("GOLIQ_GROUND_TYPE", "3")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, 2012, *cfg.JRA.Year)
		assert.Equal(t, 1, *cfg.JRA.EQLevel)
		assert.Equal(t, "B2", *cfg.JRA.RegionalClass)
		assert.Equal(t, 3, *cfg.JRA.GroundType)
		assert.False(t, *cfg.JRA.IsGivenKhgl)
	})

	t.Run("GOLIQ_KHGL marks khgl as given", func(t *testing.T) {
		t.Setenv("GOLIQ_KHGL", "0.25")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, 0.25, *cfg.JRA.Khgl)
		assert.True(t, *cfg.JRA.IsGivenKhgl)
	})

	t.Run("runtime settings", func(t *testing.T) {
		t.Setenv("GOLIQ_GWL", "2.5")
		t.Setenv("GOLIQ_CACHE_ENABLED", "false")
		t.Setenv("GOLIQ_CACHE_PATH", "/tmp/x.db")
		t.Setenv("GOLIQ_JOBS", "8")
		t.Setenv("GOLIQ_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, 2.5, *cfg.GroundWaterLevel)
		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, "/tmp/x.db", cfg.Cache.Path)
		assert.Equal(t, 8, cfg.Batch.Jobs)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Setenv("GOLIQ_EQ_LEVEL", "two")
		cfg := DefaultConfig()
		assert.ErrorContains(t, cfg.applyEnvOverrides(), "GOLIQ_EQ_LEVEL")
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOLIQ_TEST_DOTENV=from-file\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("GOLIQ_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("GOLIQ_TEST_DOTENV"))
}

func TestPropertyTable(t *testing.T) {
	cfg := DefaultConfig()
	tbl, err := cfg.PropertyTable()
	require.NoError(t, err)
	_, ok := tbl.Lookup("砂")
	assert.True(t, ok)

	cfg.SoilTable = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.PropertyTable()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Cache.Path = ""
	assert.Error(t, cfg.Validate())

	cfg.Cache.Enabled = false
	assert.NoError(t, cfg.Validate())
}
