package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stillpoint/junction/internal/config"
	"github.com/stillpoint/junction/pkg/logging"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `
[server]
host = "0.0.0.0"
port = 8080
debug = true
max_body_size = "1MB"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if !cfg.Server.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Server.MaxBodySizeBytes() != 1000000 {
		t.Errorf("MaxBodySizeBytes() = %d, want 1000000", cfg.Server.MaxBodySizeBytes())
	}
	if cfg.Logging.Level != logging.LevelDebug {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != logging.FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.toml", `[server`)

	_, err := config.Load(path)
	if err == nil {
		t.Fatal("Load() should fail for malformed TOML")
	}
}

func TestLoad_Overlay(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("Chdir() failed: %v", err)
		}
	})
	t.Setenv(config.EnvServiceEnv, "test")

	writeConfig(t, dir, "config.toml", `
[server]
host = "localhost"
port = 8080
`)
	writeConfig(t, dir, "config.test.toml", `
[server]
port = 9090
`)

	cfg, err := config.Load("config.toml")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Host != "localhost" {
		t.Errorf("Host = %q, want base value preserved", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want overlay value 9090", cfg.Server.Port)
	}
}

func TestServerConfig_Defaults(t *testing.T) {
	var cfg config.ServerConfig

	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Addr() != "localhost:5000" {
		t.Errorf("Addr() = %q, want localhost:5000", cfg.Addr())
	}
	if cfg.Debug {
		t.Error("Debug = true, want false by default")
	}
	if cfg.ReadTimeoutDuration() != 15*time.Second {
		t.Errorf("ReadTimeoutDuration() = %s, want 15s", cfg.ReadTimeoutDuration())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %s, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.MaxBodySizeBytes() != 4000000 {
		t.Errorf("MaxBodySizeBytes() = %d, want 4000000", cfg.MaxBodySizeBytes())
	}
}

func TestServerConfig_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServerHost, "0.0.0.0")
	t.Setenv(config.EnvServerPort, "3000")
	t.Setenv(config.EnvServerDebug, "true")
	t.Setenv(config.EnvServerMaxBodySize, "2MB")

	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:3000" {
		t.Errorf("Addr() = %q, want 0.0.0.0:3000", cfg.Addr())
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true from env")
	}
	if cfg.MaxBodySizeBytes() != 2000000 {
		t.Errorf("MaxBodySizeBytes() = %d, want 2000000", cfg.MaxBodySizeBytes())
	}
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.ServerConfig)
	}{
		{
			name:   "port out of range",
			mutate: func(c *config.ServerConfig) { c.Port = 70000 },
		},
		{
			name:   "bad read timeout",
			mutate: func(c *config.ServerConfig) { c.ReadTimeout = "soon" },
		},
		{
			name:   "bad shutdown timeout",
			mutate: func(c *config.ServerConfig) { c.ShutdownTimeout = "whenever" },
		},
		{
			name:   "bad body size",
			mutate: func(c *config.ServerConfig) { c.MaxBodySize = "lots" },
		},
		{
			name:   "negative body size",
			mutate: func(c *config.ServerConfig) { c.MaxBodySize = "-1MB" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.ServerConfig
			tt.mutate(&cfg)

			if err := cfg.Finalize(); err == nil {
				t.Error("Finalize() should fail")
			}
		})
	}
}
