package config

import (
	"time"

	"github.com/roamfs/roamfs/internal/bytesize"
)

// GetDefaultConfig returns the configuration used when no config file
// exists: an in-memory backend with text logging.
func GetDefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
		Transfer: TransferConfig{
			BufferSize: 1 * bytesize.MiB,
			Timeout:    0,
		},
		Backend: BackendConfig{
			Type: "memory",
		},
	}
}

// ApplyDefaults fills zero-valued fields with their defaults after a
// config file has been unmarshaled.
func ApplyDefaults(cfg *Config) {
	def := GetDefaultConfig()

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
	if cfg.Transfer.BufferSize == 0 {
		cfg.Transfer.BufferSize = def.Transfer.BufferSize
	}
	if cfg.Transfer.Timeout < 0 {
		cfg.Transfer.Timeout = time.Duration(0)
	}
	if cfg.Backend.Type == "" {
		cfg.Backend.Type = def.Backend.Type
	}
}
