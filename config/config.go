// Package config loads dashboard settings from config.yaml, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Addr         string   `yaml:"addr"`
	DataPath     string   `yaml:"data_path"`
	TargetColumn string   `yaml:"target_column"` // empty selects the first value column
	Postgres     Postgres `yaml:"postgres"`
	Suggest      Suggest  `yaml:"suggest"`
}

// Postgres selects the database source when DSN is set.
type Postgres struct {
	DSN        string `yaml:"dsn"`
	Table      string `yaml:"table"`
	DateColumn string `yaml:"date_column"`
}

// Suggest controls the automatic order suggestion on the forecast page.
type Suggest struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:     ":8501",
		DataPath: "data/data_inflasi.csv",
		Postgres: Postgres{
			Table:      "inflasi",
			DateColumn: "periode",
		},
		Suggest: Suggest{Enabled: true},
	}
}

// Load reads path (a missing file is not an error), then .env files, then
// environment overrides.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("INFLASI_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("INFLASI_DATA_PATH"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("INFLASI_TARGET_COLUMN"); v != "" {
		cfg.TargetColumn = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("INFLASI_SUGGEST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Suggest.Enabled = b
		}
	}
}
