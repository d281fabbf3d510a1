package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.SIEM.PollInterval != 5*time.Second {
		t.Fatalf("poll interval default = %v, want 5s", c.SIEM.PollInterval)
	}
	if c.SIEM.Timeout != 300*time.Second {
		t.Fatalf("timeout default = %v, want 300s", c.SIEM.Timeout)
	}
	if c.Server.Addr != ":8480" {
		t.Fatalf("addr default = %q", c.Server.Addr)
	}
	if c.Session.Driver != "memory" {
		t.Fatalf("session driver default = %q", c.Session.Driver)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SIEM_POLL_INTERVAL", "2s")
	t.Setenv("SIEM_SEARCH_TIMEOUT", "1m")
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("SESSION_DRIVER", "redis")

	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.SIEM.PollInterval != 2*time.Second {
		t.Fatalf("poll interval = %v", c.SIEM.PollInterval)
	}
	if c.SIEM.Timeout != time.Minute {
		t.Fatalf("timeout = %v", c.SIEM.Timeout)
	}
	if c.Server.Addr != ":9999" || c.Session.Driver != "redis" {
		t.Fatalf("env overrides not applied: %+v", c)
	}
}

func TestLoad_YAMLThenEnvWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  addr: ":7000"
falcon:
  base_url: "https://api.example.com"
siem:
  poll_interval: 10s
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SERVER_ADDR", ":7001")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Addr != ":7001" {
		t.Fatalf("env must win over yaml, got %q", c.Server.Addr)
	}
	if c.Falcon.BaseURL != "https://api.example.com" {
		t.Fatalf("yaml value lost: %q", c.Falcon.BaseURL)
	}
	if c.SIEM.PollInterval != 10*time.Second {
		t.Fatalf("yaml poll interval lost: %v", c.SIEM.PollInterval)
	}
}
