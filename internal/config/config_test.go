package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvServerURL, EnvSchema, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != defaultServerURL {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, defaultServerURL)
	}
	if cfg.Schema != defaultSchema {
		t.Fatalf("Schema = %q, want %q", cfg.Schema, defaultSchema)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Fatalf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if !strings.HasPrefix(cfg.SettingsFile, home) {
		t.Fatalf("SettingsFile = %q, want it under HOME %q", cfg.SettingsFile, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server_url = "  10.0.0.5:9999  "
schema = "flat"
poll_interval_seconds = 3
request_timeout_seconds = 2
log_file = "  ~/logs/roster.log  "
log_level = "debug"
settings_file = "~/roster.toml"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "10.0.0.5:9999" {
		t.Fatalf("ServerURL = %q, want %q", cfg.ServerURL, "10.0.0.5:9999")
	}
	if cfg.Schema != "flat" {
		t.Fatalf("Schema = %q, want flat", cfg.Schema)
	}
	if cfg.PollInterval != 3*time.Second || cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("intervals = %v/%v, want 3s/2s", cfg.PollInterval, cfg.RequestTimeout)
	}
	if cfg.LogFile != filepath.Join(home, "logs", "roster.log") {
		t.Fatalf("LogFile = %q, want under %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.SettingsFile != filepath.Join(home, "roster.toml") {
		t.Fatalf("SettingsFile = %q", cfg.SettingsFile)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
server_url = "   "
poll_interval_seconds = 0
request_timeout_seconds = -4
log_level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg != want {
		t.Fatalf("Load = %#v, want %#v", cfg, want)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvServerURL, "envhost:7000")
	t.Setenv(EnvSchema, "flat")
	t.Setenv(EnvLogLevel, "warn")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`server_url = "filehost:1"`+"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "envhost:7000" || cfg.Schema != "flat" || cfg.LogLevel != "warn" {
		t.Fatalf("env overrides not applied: %#v", cfg)
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server_url = [\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %v, want parse config error", err)
	}
}

func TestLoadEnv_ReadsDotEnvWithoutOverriding(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	clearEnv(t)
	os.Unsetenv(EnvServerURL)
	t.Setenv(EnvSchema, "structured")

	dotenv := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(dotenv, []byte("ROSTER_SERVER_URL=dotenv:8080\nROSTER_SCHEMA=flat\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvServerURL) })

	if err := LoadEnv(dotenv, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "dotenv:8080" {
		t.Fatalf("ServerURL = %q, want dotenv:8080", cfg.ServerURL)
	}
	if cfg.Schema != "structured" {
		t.Fatalf("Schema = %q, existing env should win over .env", cfg.Schema)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/.config/roster")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, ".config", "roster") {
		t.Fatalf("expandPath = %q", got)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath on blank path should fail")
	}
}
