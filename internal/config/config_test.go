package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Sim.Games)
	assert.Equal(t, 1000, cfg.Sim.MaxTurns)
	assert.Equal(t, uint8(1), cfg.Rules.ReserveCapacity)
	assert.Equal(t, 50, cfg.Agent.DiversionLimit)
	assert.Equal(t, "reports", cfg.Report.Dir)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Sim.Games, cfg.Sim.Games)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "klondike.yaml", `
sim:
  games: 250
  workers: 3
  seed: 42
rules:
  reserve_capacity: 0
  max_reshuffles: 5
agent:
  diversion_limit: 20
store:
  postgres_dsn: postgres://localhost/klondike
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Sim.Games)
	assert.Equal(t, 3, cfg.Sim.Workers)
	assert.Equal(t, uint64(42), cfg.Sim.Seed)
	assert.Equal(t, uint8(0), cfg.Rules.ReserveCapacity)
	assert.Equal(t, uint16(5), cfg.Rules.MaxReshuffles)
	assert.Equal(t, 20, cfg.Agent.DiversionLimit)
	// Fields the file leaves out keep their defaults.
	assert.Equal(t, 30, cfg.Agent.HistoryLen)
	assert.Equal(t, "postgres://localhost/klondike", cfg.Store.PostgresDSN)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "klondike.json", `{"sim": {"games": 7}, "log": {"json": true}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Sim.Games)
	assert.True(t, cfg.Log.JSON)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "klondike.yaml", "sim:\n  games: 250\n")
	t.Setenv("KLONDIKE_GAMES", "12")
	t.Setenv("KLONDIKE_SEED", "9")
	t.Setenv("KLONDIKE_RESERVE_CAPACITY", "0")
	t.Setenv("KLONDIKE_REDIS_ADDR", "localhost:6379")
	t.Setenv("KLONDIKE_VERIFY_INVARIANTS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Sim.Games)
	assert.Equal(t, uint64(9), cfg.Sim.Seed)
	assert.Equal(t, uint8(0), cfg.Rules.ReserveCapacity)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.True(t, cfg.Sim.VerifyInvariants)
}

func TestEnvRejectsGarbage(t *testing.T) {
	t.Setenv("KLONDIKE_GAMES", "many")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KLONDIKE_GAMES")
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", "sim:\n  games: 0\n")
	_, err := Load(path)
	assert.Error(t, err)

	path = writeFile(t, "garbage.yaml", "sim: [unclosed\n")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	bad := map[string]func(*Config){
		"games":   func(c *Config) { c.Sim.Games = -1 },
		"agent":   func(c *Config) { c.Agent.ColumnAttempts = 0 },
		"reserve": func(c *Config) { c.Rules.ReserveCapacity = 30 },
		"log":     func(c *Config) { c.Log.Level = "loud" },
		"report":  func(c *Config) { c.Report.Dir = "" },
	}
	for name, mutate := range bad {
		c := Default()
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}

func TestConfigureLogger(t *testing.T) {
	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", JSON: true}
	logger := logrus.New()
	cfg.ConfigureLogger(logger)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}
