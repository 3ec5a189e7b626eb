// Package config loads the simulator configuration.
//
// Values are layered with priority env > file > defaults. A .env file in the
// working directory is loaded into the environment first when present.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	engine "github.com/jason-s-yu/klondike/engine"
	"github.com/jason-s-yu/klondike/engine/agent"
	"github.com/jason-s-yu/klondike/internal/sim"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KLONDIKE_"

// StoreConfig locates the optional persistence backends. Empty values
// disable the corresponding store.
type StoreConfig struct {
	PostgresDSN string `yaml:"postgres_dsn" json:"postgres_dsn"`
	RedisAddr   string `yaml:"redis_addr" json:"redis_addr"`
	RedisKey    string `yaml:"redis_key" json:"redis_key"`
}

// ReportConfig controls the report files written after a batch.
type ReportConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	Save       bool   `yaml:"save" json:"save"`
	Cumulative bool   `yaml:"cumulative" json:"cumulative"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	JSON  bool   `yaml:"json" json:"json"`
}

// Config is the full simulator configuration.
type Config struct {
	Sim     sim.Config    `yaml:"sim" json:"sim"`
	Rules   engine.Rules  `yaml:"rules" json:"rules"`
	Agent   agent.Config  `yaml:"agent" json:"agent"`
	Store   StoreConfig   `yaml:"store" json:"store"`
	Report  ReportConfig  `yaml:"report" json:"report"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Log     LogConfig     `yaml:"log" json:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Sim:    sim.DefaultConfig(),
		Rules:  engine.DefaultRules(),
		Agent:  agent.DefaultConfig(),
		Store:  StoreConfig{RedisKey: "klondike:totals"},
		Report: ReportConfig{Dir: "reports", Save: true, Cumulative: true},
		Log:    LogConfig{Level: "info"},
	}
}

// Load loads configuration with priority: env > file > defaults.
//
// A missing file at path is not an error; an unparsable one is.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	// Try YAML first, then JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadEnv(cfg *Config) error {
	var errs []error
	setInt := func(name string, dst *int) {
		if v, ok := lookup(name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = i
		}
	}
	setUint := func(name string, bits int, dst func(uint64)) {
		if v, ok := lookup(name); ok {
			u, err := strconv.ParseUint(v, 10, bits)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			dst(u)
		}
	}
	setBool := func(name string, dst *bool) {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	setString := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	// Simulation
	setInt("GAMES", &cfg.Sim.Games)
	setInt("WORKERS", &cfg.Sim.Workers)
	setUint("SEED", 64, func(u uint64) { cfg.Sim.Seed = u })
	setInt("MAX_TURNS", &cfg.Sim.MaxTurns)
	setBool("VERIFY_INVARIANTS", &cfg.Sim.VerifyInvariants)
	setInt("PROGRESS_EVERY", &cfg.Sim.ProgressEvery)

	// Rules
	setUint("RESERVE_CAPACITY", 8, func(u uint64) { cfg.Rules.ReserveCapacity = uint8(u) })
	setUint("MAX_RESHUFFLES", 16, func(u uint64) { cfg.Rules.MaxReshuffles = uint16(u) })

	// Agent
	setInt("DIVERSION_LIMIT", &cfg.Agent.DiversionLimit)
	setInt("HISTORY_LEN", &cfg.Agent.HistoryLen)

	// Stores
	setString("PG_DSN", &cfg.Store.PostgresDSN)
	setString("REDIS_ADDR", &cfg.Store.RedisAddr)
	setString("REDIS_KEY", &cfg.Store.RedisKey)

	// Reports
	setString("REPORT_DIR", &cfg.Report.Dir)
	setBool("REPORT_SAVE", &cfg.Report.Save)
	setBool("REPORT_CUMULATIVE", &cfg.Report.Cumulative)

	// Metrics and logging
	setString("METRICS_ADDR", &cfg.Metrics.Addr)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setBool("LOG_JSON", &cfg.Log.JSON)

	return errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("sim: %w", err)
	}
	if err := c.Agent.Validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	if int(c.Rules.ReserveCapacity) > engine.StockSize {
		return fmt.Errorf("rules: reserve_capacity must be at most %d, got %d", engine.StockSize, c.Rules.ReserveCapacity)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Report.Save && c.Report.Dir == "" {
		return errors.New("report: dir is required when save is enabled")
	}
	return nil
}

// ConfigureLogger applies the log section to logger.
func (c Config) ConfigureLogger(logger *logrus.Logger) {
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	if c.Log.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
