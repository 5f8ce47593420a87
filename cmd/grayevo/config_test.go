package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/grayevo/parameter"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig([]string{"dog.jpg"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "dog.jpg", cfg.Image)
	assert.Equal(t, parameter.GAPoolSize, cfg.PopulationSize)
	assert.Equal(t, parameter.GAMutationRate, cfg.MutationRate)
	assert.Equal(t, parameter.GAMaxGeneration, cfg.MaxGeneration)
	assert.Equal(t, parameter.GAPlotInterval, cfg.PlotInterval)
	assert.Equal(t, "none", cfg.ReportStore, "reports are opt-in")
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
image = "from-file.png"
population_size = 40
mutation_rate = 0.05
max_generation = 200
report_store = "sqlite"
live = true
`), 0644))

	cfg, err := LoadConfig([]string{"--config", path, "-p", "60", "--live=false"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "from-file.png", cfg.Image)
	assert.Equal(t, 60, cfg.PopulationSize)
	assert.Equal(t, 0.05, cfg.MutationRate)
	assert.Equal(t, 200, cfg.MaxGeneration)
	assert.Equal(t, "sqlite", cfg.ReportStore)
	assert.False(t, cfg.Live)
	assert.Equal(t, filepath.Join(cfg.ReportPath, "grayevo.db"), cfg.StorePath())
}

func TestLoadConfig_UnknownFileKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("image = \"a.png\"\npopulaton_size = 40\n"), 0644))

	_, err := LoadConfig([]string{"--config", path}, io.Discard)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "populaton_size")
}

func TestLoadConfig_PositionalImage(t *testing.T) {
	cfg, err := LoadConfig([]string{"-g", "10", "a.png"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "a.png", cfg.Image)
	assert.Equal(t, 10, cfg.MaxGeneration)

	_, err = LoadConfig([]string{"a.png", "b.png"}, io.Discard)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfig_Help(t *testing.T) {
	_, err := LoadConfig([]string{"--help"}, io.Discard)
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"--no-such-flag", "a.png"}, io.Discard)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "a.png"}, io.Discard)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	valid.Image = "a.png"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty image", func(c *Config) { c.Image = "" }},
		{"population of one", func(c *Config) { c.PopulationSize = 1 }},
		{"zero mutation rate", func(c *Config) { c.MutationRate = 0 }},
		{"mutation rate above one", func(c *Config) { c.MutationRate = 1.5 }},
		{"negative max generation", func(c *Config) { c.MaxGeneration = -1 }},
		{"negative noise", func(c *Config) { c.NoiseAmplitude = -1 }},
		{"zero rate floor", func(c *Config) { c.RateFloor = 0 }},
		{"zero plot interval", func(c *Config) { c.PlotInterval = 0 }},
		{"negative stagnation threshold", func(c *Config) { c.StagnationThreshold = -1 }},
		{"unknown store", func(c *Config) { c.ReportStore = "redis" }},
		{"unknown render mode", func(c *Config) { c.Render = "sixel" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	edge := valid
	edge.MutationRate = 1
	edge.MaxGeneration = 0
	assert.NoError(t, edge.Validate())
}
