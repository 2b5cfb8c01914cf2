package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.EmbeddingDim)
	assert.Equal(t, 0.35, cfg.Fusion.ReviewThreshold)
	assert.Equal(t, 0.65, cfg.Fusion.BlockThreshold)
	assert.True(t, cfg.Persistence.Enabled)
}

func TestLoadAppliesEnvironmentOverride(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("EIGENSLUR_EMBEDDING_DIM", "128")
	t.Setenv("EIGENSLUR_LABELER_MODE", "heuristic")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.EmbeddingDim)
	assert.Equal(t, "heuristic", cfg.Labeler.Mode)
}
