package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv("MCLAUNCH_GAME_DIR", "")
	t.Setenv("MCLAUNCH_JAVA", "")
	t.Setenv("MCLAUNCH_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 50, cfg.GetAssetConcurrency())
	assert.Equal(t, 300*time.Second, cfg.GetCrashWindow())
	assert.Equal(t, "https://resources.download.minecraft.net", cfg.Hosts.Resources)
}

func TestLoadOverridesDefaults(t *testing.T) {
	t.Setenv("MCLAUNCH_GAME_DIR", "")
	t.Setenv("MCLAUNCH_JAVA", "/opt/java/bin/java")
	t.Setenv("MCLAUNCH_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
game_dir: /games/mc
memory:
  max: 4G
network:
  timeout: 5s
hosts:
  fabric_meta: http://localhost:9000/v2
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/games/mc", cfg.GameDir)
	assert.Equal(t, "4G", cfg.Memory.Max)
	assert.Equal(t, "1G", cfg.Memory.Min)
	assert.Equal(t, 5*time.Second, cfg.GetTimeout())
	assert.Equal(t, "http://localhost:9000/v2", cfg.Hosts.FabricMeta)
	assert.Equal(t, "https://meta.quiltmc.org/v3", cfg.Hosts.QuiltMeta)
	assert.Equal(t, "/opt/java/bin/java", cfg.JavaPath)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("memory: [unterminated"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, util.ErrParse)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("MCLAUNCH_GAME_DIR", "")
	t.Setenv("MCLAUNCH_JAVA", "")
	t.Setenv("MCLAUNCH_LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.GameDir = "/srv/minecraft"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDurationFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network.Timeout = "soon"
	cfg.Crash.FreshnessWindow = ""
	cfg.Assets.Concurrency = 0
	assert.Equal(t, 60*time.Second, cfg.GetTimeout())
	assert.Equal(t, 300*time.Second, cfg.GetCrashWindow())
	assert.Equal(t, 50, cfg.GetAssetConcurrency())
}
