package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Addr != ":8501" {
		t.Errorf("Expected default addr :8501, got %q", cfg.Addr)
	}
	if cfg.DataPath != "data/data_inflasi.csv" {
		t.Errorf("Unexpected data path %q", cfg.DataPath)
	}
	if cfg.Postgres.DSN != "" {
		t.Errorf("Expected no database by default, got %q", cfg.Postgres.DSN)
	}
}

func TestLoadYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, "test.env")

	yamlData := "addr: \":9000\"\ntarget_column: Inflasi\npostgres:\n  table: bps.inflasi\nsuggest:\n  enabled: false\n"
	if err := os.WriteFile(yamlPath, []byte(yamlData), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envPath, []byte("INFLASI_DATA_PATH=/srv/inflasi.csv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INFLASI_ADDR", ":9100")
	t.Setenv("INFLASI_DATA_PATH", "")
	os.Unsetenv("INFLASI_DATA_PATH")
	t.Setenv("DATABASE_URL", "postgres://reader@localhost/bps")

	cfg, err := Load(yamlPath, envPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr != ":9100" {
		t.Errorf("Expected environment to override addr, got %q", cfg.Addr)
	}
	if cfg.DataPath != "/srv/inflasi.csv" {
		t.Errorf("Expected data path from .env, got %q", cfg.DataPath)
	}
	if cfg.TargetColumn != "Inflasi" {
		t.Errorf("Unexpected target column %q", cfg.TargetColumn)
	}
	if cfg.Postgres.Table != "bps.inflasi" || cfg.Postgres.DateColumn != "periode" {
		t.Errorf("Unexpected postgres settings %+v", cfg.Postgres)
	}
	if cfg.Postgres.DSN != "postgres://reader@localhost/bps" {
		t.Errorf("Unexpected DSN %q", cfg.Postgres.DSN)
	}
	if cfg.Suggest.Enabled {
		t.Error("Expected suggestion disabled by YAML")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, filepath.Join(t.TempDir(), "none.env")); err == nil {
		t.Error("Expected a parse error")
	}
}
