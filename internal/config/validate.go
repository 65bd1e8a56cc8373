// internal/config/validate.go
package config

import "fmt"

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	m := cfg.Monitor

	if m.Serial.BaudRate <= 0 {
		return fmt.Errorf("config: serial baud_rate must be > 0, got %d", m.Serial.BaudRate)
	}
	if m.Serial.ProbeTimeoutSec <= 0 {
		return fmt.Errorf("config: serial probe_timeout_sec must be > 0, got %d", m.Serial.ProbeTimeoutSec)
	}
	if m.Link.ConnectTimeoutSec <= 0 {
		return fmt.Errorf("config: link connect_timeout_sec must be > 0, got %d", m.Link.ConnectTimeoutSec)
	}
	if m.StatusIntervalSec <= 0 {
		return fmt.Errorf("config: status_interval_sec must be > 0, got %d", m.StatusIntervalSec)
	}

	return nil
}
