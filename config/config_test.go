package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
state_path: /tmp/recovery.json
players_file: /data/players.csv
roster_dir: /data/rosters
playbalance:
  enableUsageModelV2: 1
  maxApps3Day_MR: 4
metrics:
  prometheus_enabled: true
  prometheus_port: 9200
sim:
  days: 15
  start: "2025-05-01"
  teams: [ATL, NYM]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/recovery.json", cfg.StatePath)
	assert.Equal(t, "/data/players.csv", cfg.PlayersFile)
	assert.Equal(t, 1.0, cfg.PlayBalance["enableUsageModelV2"])
	assert.Equal(t, 4.0, cfg.PlayBalance["maxApps3Day_MR"])
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, 9200, cfg.Metrics.PrometheusPort)
	assert.Equal(t, 15, cfg.Sim.Days)
	assert.Equal(t, []string{"ATL", "NYM"}, cfg.Sim.Teams)
}

func TestLoadJSONAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/pitcher_recovery.json", cfg.StatePath)
	assert.Equal(t, "data/players.csv", cfg.PlayersFile)
	assert.Equal(t, "data/rosters", cfg.RosterDir)
	assert.Equal(t, 9105, cfg.Metrics.PrometheusPort)
	assert.Equal(t, 30, cfg.Sim.Days)
	assert.Equal(t, "2025-04-01", cfg.Sim.Start)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DUGOUT_STATE_PATH", "/env/recovery.json")
	path := writeConfig(t, "config.yaml", "state_path: /file/recovery.json\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/recovery.json", cfg.StatePath)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "state_path = 'x'\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidSimConfig(t *testing.T) {
	path := writeConfig(t, "config.yaml", "sim:\n  start: not-a-date\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
