package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadAppliesBloodFactorDefaults(t *testing.T) {
	path := writeConfig(t, `
listen: ":8080"
storage:
  database: data/test.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Scoring.FirstBloodFactor)
	assert.Equal(t, 1.5, cfg.Scoring.SecondBloodFactor)
	assert.Equal(t, 1.25, cfg.Scoring.ThirdBloodFactor)
}

func TestLoadKeepsExplicitFactors(t *testing.T) {
	path := writeConfig(t, `
scoring:
  first_blood_factor: 3.0
  second_blood_factor: 2.0
  third_blood_factor: 1.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Scoring.FirstBloodFactor)
	assert.Equal(t, 2.0, cfg.Scoring.SecondBloodFactor)
	assert.Equal(t, 1.5, cfg.Scoring.ThirdBloodFactor)
}

func TestLoadRejectsFactorBelowOne(t *testing.T) {
	path := writeConfig(t, `
scoring:
  second_blood_factor: 0.5
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second_blood_factor")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
