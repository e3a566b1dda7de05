package agent

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the inventory agent configuration, loaded from a YAML
// file with environment variable overrides.
type Config struct {
	// ListenAddr is the address the helper server binds to. The agent
	// is a local helper, so the default binds to loopback only.
	ListenAddr string `yaml:"listen_addr"`

	// WebhookURL is the workflow webhook that receives registration
	// events.
	WebhookURL string `yaml:"webhook_url"`

	// LicenseScript is an optional script whose stdout is included in
	// the inventory report.
	LicenseScript string `yaml:"license_script"`

	// CommandTimeout bounds each individual inventory command.
	CommandTimeout time.Duration `yaml:"command_timeout"`

	// WebhookTimeout bounds the registration POST.
	WebhookTimeout time.Duration `yaml:"webhook_timeout"`
}

// DefaultConfig returns the agent defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     "127.0.0.1:9090",
		CommandTimeout: 10 * time.Second,
		WebhookTimeout: 15 * time.Second,
	}
}

// LoadConfig reads the YAML config file at path. A missing file is
// not an error: defaults plus env overrides apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	// Environment overrides
	if v := os.Getenv("AGENT_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("AGENT_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("AGENT_LICENSE_SCRIPT"); v != "" {
		cfg.LicenseScript = v
	}

	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = 10 * time.Second
	}
	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = 15 * time.Second
	}

	return cfg, nil
}
