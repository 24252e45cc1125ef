package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHARLA_SERVER_URL", "")
	t.Setenv("CHARLA_ENV", "")
	t.Setenv("CHARLA_LOG_FILE", "")

	cfg := Load()
	if cfg.ServerURL != "http://localhost:3000" {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.LogFile != "charla.log" {
		t.Errorf("LogFile = %q, want charla.log", cfg.LogFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHARLA_SERVER_URL", "https://chat.example.com")
	t.Setenv("CHARLA_ENV", "prod")
	t.Setenv("CHARLA_STATE_FILE", "/tmp/state.json")

	cfg := Load()
	if cfg.ServerURL != "https://chat.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Env != "prod" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.StateFile != "/tmp/state.json" {
		t.Errorf("StateFile = %q", cfg.StateFile)
	}
}
