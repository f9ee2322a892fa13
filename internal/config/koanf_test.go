// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points the file based sources at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
	t.Chdir(dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverMongo {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverMongo)
	}
	if cfg.Security.BcryptCost != 10 {
		t.Errorf("Security.BcryptCost = %d, want 10", cfg.Security.BcryptCost)
	}
	if cfg.Events.Driver != EventsChannel {
		t.Errorf("Events.Driver = %q, want %q", cfg.Events.Driver, EventsChannel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Server.PublicDir != "public" {
		t.Errorf("Server.PublicDir = %q, want public", cfg.Server.PublicDir)
	}
	if cfg.Cache.MovieListTTL != 0 {
		t.Errorf("Cache.MovieListTTL = %v, want 0 (disabled)", cfg.Cache.MovieListTTL)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "8088")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("DB_NAME", "movies")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("BREAKER_FAILURE_RATIO", "0.5")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 8088 {
		t.Errorf("Server.Port = %d, want 8088", cfg.Server.Port)
	}
	if cfg.Database.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("Database.MongoURI = %q", cfg.Database.MongoURI)
	}
	if cfg.Database.MongoDatabase != "movies" {
		t.Errorf("Database.MongoDatabase = %q, want movies", cfg.Database.MongoDatabase)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("Security.RateLimitWindow = %v, want 30s", cfg.Security.RateLimitWindow)
	}
	if cfg.Breaker.FailureRatio != 0.5 {
		t.Errorf("Breaker.FailureRatio = %v, want 0.5", cfg.Breaker.FailureRatio)
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 7000
  environment: staging
database:
  driver: badger
  badger_in_memory: true
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverBadger || !cfg.Database.BadgerInMemory {
		t.Errorf("Database = %+v, want in-memory badger", cfg.Database)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, env should win over file", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_DotEnv(t *testing.T) {
	dir := isolate(t)
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("DATABASE_DRIVER=badger\nBADGER_PATH=/tmp/marquee-test\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(DotEnvPathEnvVar, envPath)
	// godotenv writes into the process environment; register cleanup first.
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("BADGER_PATH", "")
	os.Unsetenv("DATABASE_DRIVER")
	os.Unsetenv("BADGER_PATH")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Database.Driver != DriverBadger {
		t.Errorf("Database.Driver = %q, want badger from .env", cfg.Database.Driver)
	}
	if cfg.Database.BadgerPath != "/tmp/marquee-test" {
		t.Errorf("Database.BadgerPath = %q", cfg.Database.BadgerPath)
	}
}

func TestLoadWithKoanf_InvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_DRIVER", "postgres")

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "DATABASE_DRIVER") {
		t.Errorf("error = %v, want mention of DATABASE_DRIVER", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"PORT":           "server.port",
		"MONGO_URI":      "database.mongo_uri",
		"mongo_uri":      "database.mongo_uri",
		"EVENTS_DRIVER":  "events.driver",
		"HOME":           "",
		"SOMETHING_ELSE": "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
