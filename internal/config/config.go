package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr string `yaml:"http_addr"`

	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`

	// plain|bcrypt. The source system compares stored credentials byte-exact;
	// bcrypt is the drop-in hashed scheme behind the same verifier seam.
	AuthScheme string `yaml:"auth_scheme"`

	// Fixed credential that signals a first-time student self-registration.
	DefaultStudentPassword string `yaml:"default_student_password"`

	CORSOrigins []string `yaml:"cors_origins"`
}

// Load builds the config from an optional YAML file (CONFIG_FILE) with
// environment variables taking precedence over file values.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:               ":8080",
		DBDriver:               "sqlite",
		AuthScheme:             "plain",
		DefaultStudentPassword: "Student@123",
		CORSOrigins:            []string{"http://localhost:5173", "http://127.0.0.1:5173"},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config file: %w", err)
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.HTTPAddr = envOr("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DBDriver = envOr("DB_DRIVER", cfg.DBDriver)
	cfg.DBDSN = envOr("DB_DSN", cfg.DBDSN)
	cfg.AuthScheme = envOr("AUTH_SCHEME", cfg.AuthScheme)
	cfg.DefaultStudentPassword = envOr("DEFAULT_STUDENT_PASSWORD", cfg.DefaultStudentPassword)
	cfg.CORSOrigins = csvOr("CORS_ORIGINS", cfg.CORSOrigins)

	switch cfg.AuthScheme {
	case "plain", "bcrypt":
	default:
		return Config{}, fmt.Errorf("unsupported auth scheme: %s", cfg.AuthScheme)
	}
	return cfg, nil
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
