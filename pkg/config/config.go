// Package config loads and validates the RoamFS configuration from file,
// environment and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/roamfs/roamfs/internal/bytesize"
	"github.com/roamfs/roamfs/pkg/client/s3"
	"github.com/roamfs/roamfs/pkg/client/sftp"
)

// Config represents the RoamFS configuration.
//
// It captures the static aspects of a session: logging, metrics,
// transfer tuning and the backend to connect to. Exactly one backend
// section is consulted, selected by Backend.Type.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
	Transfer TransferConfig `mapstructure:"transfer" yaml:"transfer"`
	Backend  BackendConfig  `mapstructure:"backend" yaml:"backend"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR"`

	// Format is "text" or "json".
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
}

// MetricsConfig controls operation instrumentation.
type MetricsConfig struct {
	// Enabled turns on the Prometheus registry for backend operations.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// TransferConfig tunes file transfers.
type TransferConfig struct {
	// BufferSize is the copy buffer used by get/put. Accepts
	// human-readable sizes like "1Mi".
	BufferSize bytesize.ByteSize `mapstructure:"buffer_size" yaml:"buffer_size" validate:"required"`

	// Timeout bounds a single transfer operation. Zero disables it.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// BackendConfig selects and configures the storage backend.
type BackendConfig struct {
	// Type is one of memory, local, sftp, s3.
	Type string `mapstructure:"type" yaml:"type" validate:"required,oneof=memory local sftp s3"`

	// Local configures the local-disk backend. Only the section matching
	// Type is validated.
	Local LocalConfig `mapstructure:"local" yaml:"local,omitempty" validate:"-"`

	// SFTP configures the SFTP backend.
	SFTP sftp.Config `mapstructure:"sftp" yaml:"sftp,omitempty" validate:"-"`

	// S3 configures the S3 backend.
	S3 s3.Config `mapstructure:"s3" yaml:"s3,omitempty" validate:"-"`
}

// LocalConfig configures the local-disk backend.
type LocalConfig struct {
	// Root is the directory the session is rooted at.
	Root string `mapstructure:"root" yaml:"root,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (ROAMFS_*)
//  2. Configuration file
//  3. Default values
//
// An empty configPath uses the default location.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		return GetDefaultConfig(), nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to path in YAML.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Config files may carry credentials, so keep them owner-only.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setupViper configures environment variable and config file handling.
// Environment variables use the ROAMFS_ prefix with underscores, e.g.
// ROAMFS_LOGGING_LEVEL=DEBUG.
func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("ROAMFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(getConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if one exists. A missing
// file is not an error; defaults apply.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks returns the combined decode hook for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

// byteSizeDecodeHook converts strings and integers to bytesize.ByteSize
// so config files can use human-readable sizes like "1Gi".
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return bytesize.Parse(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory, honoring
// XDG_CONFIG_HOME.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "roamfs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "roamfs")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}
