package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.DBDriver != "sqlite" || cfg.AuthScheme != "plain" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DefaultStudentPassword != "Student@123" {
		t.Fatalf("default student password = %q", cfg.DefaultStudentPassword)
	}
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("http_addr: \":9000\"\ndb_driver: postgres\nauth_scheme: bcrypt\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_DRIVER", "sqlite") // env wins over file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Fatalf("http addr = %q, want file value", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Fatalf("db driver = %q, want env override", cfg.DBDriver)
	}
	if cfg.AuthScheme != "bcrypt" {
		t.Fatalf("auth scheme = %q", cfg.AuthScheme)
	}
}

func TestLoadRejectsUnknownScheme(t *testing.T) {
	t.Setenv("AUTH_SCHEME", "md5")
	if _, err := Load(); err == nil {
		t.Fatal("unknown auth scheme must be rejected")
	}
}
