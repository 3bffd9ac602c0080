// Package config handles loading and validating the servercli.toml
// configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration.
type Config struct {
	Scan    ScanConfig    `toml:"scan"`
	Tools   ToolsConfig   `toml:"tools"`
	Privacy PrivacyConfig `toml:"privacy"`
}

// ScanConfig configures the log scan.
type ScanConfig struct {
	// WindowHours is the trailing inclusion window in hours.
	WindowHours int `toml:"window_hours"`
	// Sources lists the log files and the keywords of interest in each.
	Sources []SourceConfig `toml:"sources"`
}

// SourceConfig declares one log source and its keywords.
type SourceConfig struct {
	Path     string   `toml:"path"`
	Keywords []string `toml:"keywords"`
}

// ToolsConfig lists the baseline utilities the tools action installs.
type ToolsConfig struct {
	Packages []Package `toml:"packages"`
}

// Package names one installable utility.
type Package struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// PrivacyConfig lists the privacy-sensitive log files the privacy action truncates.
type PrivacyConfig struct {
	LogFiles []string `toml:"log_files"`
}

// Window returns the scan window as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.Scan.WindowHours) * time.Hour
}

// Load reads a servercli.toml file and returns a validated Config. A missing
// config file is not an error: every value has a built-in default.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Scan.WindowHours <= 0 {
		return fmt.Errorf("scan.window_hours must be positive, got %d", c.Scan.WindowHours)
	}
	for i, src := range c.Scan.Sources {
		if src.Path == "" {
			return fmt.Errorf("scan.sources[%d]: path is required", i)
		}
		if len(src.Keywords) == 0 {
			return fmt.Errorf("scan.sources[%d] (%s): at least one keyword is required", i, src.Path)
		}
		for _, kw := range src.Keywords {
			if kw == "" {
				return fmt.Errorf("scan.sources[%d] (%s): empty keyword", i, src.Path)
			}
		}
	}
	for i, p := range c.Tools.Packages {
		if p.Name == "" {
			return fmt.Errorf("tools.packages[%d]: name is required", i)
		}
	}
	return nil
}

// Default returns the built-in configuration, covering the standard Debian
// log layout.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			WindowHours: 24,
			Sources: []SourceConfig{
				{
					Path: "/var/log/auth.log",
					Keywords: []string{
						"Failed password",
						"Accepted password",
						"Invalid user",
						"sudo",
						"root login",
						"permission denied",
						"authentication failure",
						"SECURITY VIOLATION",
					},
				},
				{
					Path: "/var/log/syslog",
					Keywords: []string{
						"error",
						"warning",
						"critical",
						"emergency",
						"firewall",
						"iptables",
					},
				},
				{
					Path:     "/var/log/kern.log",
					Keywords: []string{"segfault", "error", "fail", "denied"},
				},
			},
		},
		Tools: ToolsConfig{
			Packages: []Package{
				{Name: "net-tools", Description: "Network tools (includes netstat)"},
				{Name: "htop", Description: "System monitoring tool"},
				{Name: "curl", Description: "File transfer tool"},
				{Name: "wget", Description: "File download utility"},
				{Name: "vim", Description: "Text editor"},
				{Name: "tmux", Description: "Terminal multiplexer"},
			},
		},
		Privacy: PrivacyConfig{
			LogFiles: []string{
				"/var/log/auth.log",
				"/var/log/btmp",
				"/var/log/wtmp",
				"/var/log/lastlog",
			},
		},
	}
}
