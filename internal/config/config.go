// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
}

type MonitorConfig struct {
	Link   LinkConfig   `yaml:"link"`
	Serial SerialConfig `yaml:"serial"`

	// StatusIntervalSec is the period of the status summary loop.
	StatusIntervalSec int `yaml:"status_interval_sec"`

	// LogFile receives a copy of every log line. Empty disables the file sink.
	LogFile string `yaml:"log_file"`
}

// ---- LINK ----

type LinkConfig struct {
	ConnectTimeoutSec int `yaml:"connect_timeout_sec"`
}

// ---- SERIAL ----

type SerialConfig struct {
	BaudRate        int `yaml:"baud_rate"`
	ProbeTimeoutSec int `yaml:"probe_timeout_sec"`
}

// Default returns the built-in configuration.
// Values match the fixed constants of the original field setup.
func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Link: LinkConfig{
				ConnectTimeoutSec: 10,
			},
			Serial: SerialConfig{
				BaudRate:        115200,
				ProbeTimeoutSec: 1,
			},
			StatusIntervalSec: 2,
			LogFile:           "connection_log.txt",
		},
	}
}

// Load returns defaults overlaid with the YAML file at path.
// An empty path means defaults only. A missing file is not an error;
// a file that exists but does not parse is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
