package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqtran/docx-merger/internal/config"
)

func TestLoadFromFlags(t *testing.T) {
	cfg, err := config.Load([]string{
		"-excel", "./data/input.xlsx",
		"-templates", "./templates/",
		"-out", "./out",
	})
	require.NoError(t, err)

	assert.Equal(t, "data/input.xlsx", cfg.ExcelPath, "paths are cleaned")
	assert.Equal(t, "templates", cfg.TemplateDir)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, "02/01/2006", cfg.DateFormat)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMissingRequiredPath(t *testing.T) {
	_, err := config.Load([]string{"-templates", "tpl", "-out", "out"})
	require.Error(t, err)

	var cfgErr *config.Error
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "excel", cfgErr.Field)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MERGE_OUT", "/srv/out")
	t.Setenv("MERGE_DATE_FORMAT", "2006-01-02")

	cfg, err := config.Load([]string{"-excel", "in.xlsx", "-templates", "tpl"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/out", cfg.OutputDir)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("MERGE_OUT", "/srv/out")

	cfg, err := config.Load([]string{
		"-excel", "in.xlsx",
		"-templates", "tpl",
		"-out", "/flag/out",
	})
	require.NoError(t, err)
	assert.Equal(t, "/flag/out", cfg.OutputDir)
}
