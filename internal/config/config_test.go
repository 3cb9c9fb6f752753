package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernelcore/actorrt/internal/config"
)

func Test_Load_Returns_Defaults_When_Path_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func Test_Load_Merges_Manifest_Over_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.hujson")

	doc := []byte(`{
		// drain exercises the exclusive-reader scenario
		"scenario": "drain",
		"pool_capacity": 4,
	}`)
	require.NoError(t, os.WriteFile(path, doc, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "drain", cfg.Scenario)
	assert.Equal(t, 4, cfg.PoolCapacity)
	assert.Equal(t, config.DefaultConfig().TickIntervalMS, cfg.TickIntervalMS)
}

func Test_Load_Rejects_Unknown_Scenario(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "run.hujson")
	require.NoError(t, os.WriteFile(path, []byte(`{"scenario": "bogus"}`), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
