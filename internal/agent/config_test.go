package agent

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Errorf("unexpected default listen addr %q", cfg.ListenAddr)
	}
	if cfg.CommandTimeout != 10*time.Second {
		t.Errorf("unexpected default command timeout %s", cfg.CommandTimeout)
	}
	if cfg.WebhookTimeout != 15*time.Second {
		t.Errorf("unexpected default webhook timeout %s", cfg.WebhookTimeout)
	}
	if cfg.WebhookURL != "" {
		t.Errorf("expected empty webhook URL, got %q", cfg.WebhookURL)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9090" {
		t.Errorf("unexpected listen addr %q", cfg.ListenAddr)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	content := `listen_addr: "0.0.0.0:8085"
webhook_url: "https://hooks.example.com/register"
license_script: "/opt/atlas/license.sh"
command_timeout: 5s
webhook_timeout: 30s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ListenAddr != "0.0.0.0:8085" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.WebhookURL != "https://hooks.example.com/register" {
		t.Errorf("webhook URL = %q", cfg.WebhookURL)
	}
	if cfg.LicenseScript != "/opt/atlas/license.sh" {
		t.Errorf("license script = %q", cfg.LicenseScript)
	}
	if cfg.CommandTimeout != 5*time.Second {
		t.Errorf("command timeout = %s", cfg.CommandTimeout)
	}
	if cfg.WebhookTimeout != 30*time.Second {
		t.Errorf("webhook timeout = %s", cfg.WebhookTimeout)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(path, []byte(`webhook_url: "https://file.example.com"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("AGENT_LISTEN_ADDR", "127.0.0.1:7070")
	t.Setenv("AGENT_WEBHOOK_URL", "https://env.example.com")
	t.Setenv("AGENT_LICENSE_SCRIPT", "/usr/local/bin/lic")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:7070" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.WebhookURL != "https://env.example.com" {
		t.Errorf("env must override file, got %q", cfg.WebhookURL)
	}
	if cfg.LicenseScript != "/usr/local/bin/lic" {
		t.Errorf("license script = %q", cfg.LicenseScript)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [not: valid"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected parse error for invalid YAML")
	}
}

func TestLoadConfig_ZeroTimeoutsReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	if err := os.WriteFile(path, []byte("command_timeout: 0s\nwebhook_timeout: 0s\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CommandTimeout != 10*time.Second || cfg.WebhookTimeout != 15*time.Second {
		t.Errorf("zero timeouts must fall back to defaults, got %s/%s", cfg.CommandTimeout, cfg.WebhookTimeout)
	}
}
