package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/non/existent/.credentials.conf")
	if err != nil {
		t.Fatalf("Expected defaults for a missing file, got error: %v", err)
	}
	if cfg.Port != DefaultPort || cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected defaults, got port=%d timeout=%q", cfg.Port, cfg.Timeout)
	}
	if cfg.GetConfigPath() != "/non/existent/.credentials.conf" {
		t.Errorf("GetConfigPath() = %q", cfg.GetConfigPath())
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	path := writeFile(t, "creds.toml", `username = "admin"
password = "secret"
host = "192.168.0.1"
port = 6436
timeout = "2s"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Username != "admin" || cfg.Password != "secret" || cfg.Host != "192.168.0.1" || cfg.Port != 6436 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.TimeoutDuration() != 2*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 2s", cfg.TimeoutDuration())
	}
}

func TestLoadConfig_TOMLKeepsDefaults(t *testing.T) {
	path := writeFile(t, "creds.toml", `username = "admin"`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
	if cfg.Host != "" {
		t.Errorf("Host = %q, want empty for autodetection", cfg.Host)
	}
}

func TestLoadConfig_Legacy(t *testing.T) {
	path := writeFile(t, ".credentials.conf", `# Dovado credentials
username: admin
password: pass word
host: 192.168.0.1
port: 6435
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Username != "admin" || cfg.Password != "pass word" || cfg.Host != "192.168.0.1" || cfg.Port != 6435 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.GetConfigPath() != path {
		t.Errorf("GetConfigPath() = %q, want %q", cfg.GetConfigPath(), path)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"garbage":      "this is neither format",
		"unknown key":  "colour: blue",
		"invalid port": "port: http",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "bad.conf", content))
			if apperrors.CodeOf(err) != apperrors.ErrCodeConfig {
				t.Errorf("LoadConfig() error = %v, want config error", err)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvUsername: "envuser",
		EnvPort:     "7000",
		EnvHost:     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	cfg.Host = "router.lan"
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Username != "envuser" || cfg.Port != 7000 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.Host != "router.lan" {
		t.Errorf("Host = %q, empty env values must not override", cfg.Host)
	}
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == EnvPort {
			return "abc", true
		}
		return "", false
	}

	err := Default().ApplyEnv(lookup)
	if err == nil || !strings.Contains(err.Error(), EnvPort) {
		t.Errorf("ApplyEnv() error = %v, want error naming %s", err, EnvPort)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.Username = "file"
	cfg.Password = "filepw"

	cfg.ApplyOverrides(Overrides{Username: "flag", Port: 1234})

	if cfg.Username != "flag" || cfg.Password != "filepw" || cfg.Port != 1234 || cfg.Timeout != DefaultTimeout {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")

	cfg := Default()
	cfg.Username = "admin"
	cfg.Host = "10.0.0.1"
	if err := cfg.WriteConfig(path); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Username != "admin" || loaded.Host != "10.0.0.1" || loaded.Port != DefaultPort {
		t.Errorf("Unexpected config after round trip: %+v", loaded)
	}
}

func TestTimeoutDuration_Fallback(t *testing.T) {
	cfg := Default()
	cfg.Timeout = "soon"
	if cfg.TimeoutDuration() != 5*time.Second {
		t.Errorf("TimeoutDuration() = %v, want 5s fallback", cfg.TimeoutDuration())
	}
}
