// Package config provides configuration loading and validation for the rbt
// command line tool.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidCount       = errors.New("stress count must be positive")
	ErrInvalidCheckEvery  = errors.New("stress check_every must not be negative")
	ErrInvalidThreshold   = errors.New("arena hibernation_threshold must not be negative")
	ErrInvalidLogLevel    = errors.New("unknown logging level")
	ErrInvalidLogFormat   = errors.New("unknown logging format")
	ErrMissingServiceName = errors.New("telemetry service_name must not be empty")
)

// envPrefix namespaces the environment overrides, e.g. RBT_STRESS_COUNT.
const envPrefix = "RBT"

// Config holds all configuration for rbt.
type Config struct {
	Stress    StressConfig    `mapstructure:"stress"`
	Arena     ArenaConfig     `mapstructure:"arena"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// StressConfig controls the randomized insertion run.
type StressConfig struct {
	Count      int   `mapstructure:"count"`
	Seed       int64 `mapstructure:"seed"`
	CheckEvery int   `mapstructure:"check_every"`
	Duplicates bool  `mapstructure:"duplicates"`
}

// ArenaConfig holds node arena settings.
type ArenaConfig struct {
	HibernationThreshold int `mapstructure:"hibernation_threshold"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds tracing and metrics export settings.
type TelemetryConfig struct {
	OTLPEndpoint    string `mapstructure:"otlp_endpoint"`
	ServiceName     string `mapstructure:"service_name"`
	MetricsTextfile string `mapstructure:"metrics_textfile"`
	OTLPInsecure    bool   `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables. An
// empty configPath searches for rbt.yaml in the usual places and falls back
// to defaults when none exists.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("rbt")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("$HOME/.config/rbt")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// LogLevel maps the configured level name to a slog level.
func (config *Config) LogLevel() slog.Level {
	level, _ := parseLevel(config.Logging.Level)

	return level
}

// JSONLogs reports whether logs should be emitted as JSON.
func (config *Config) JSONLogs() bool {
	return strings.EqualFold(config.Logging.Format, "json")
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("stress.count", DefaultStressCount)
	viperCfg.SetDefault("stress.seed", DefaultStressSeed)
	viperCfg.SetDefault("stress.check_every", DefaultStressCheckEvery)
	viperCfg.SetDefault("stress.duplicates", DefaultStressDuplicates)

	viperCfg.SetDefault("arena.hibernation_threshold", DefaultHibernationThreshold)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)

	// Keys without a default must still be registered for AutomaticEnv.
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", DefaultOTLPInsecure)
	viperCfg.SetDefault("telemetry.service_name", DefaultServiceName)
	viperCfg.SetDefault("telemetry.metrics_textfile", "")
}

func validateConfig(config *Config) error {
	if config.Stress.Count <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, config.Stress.Count)
	}

	if config.Stress.CheckEvery < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCheckEvery, config.Stress.CheckEvery)
	}

	if config.Arena.HibernationThreshold < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, config.Arena.HibernationThreshold)
	}

	_, ok := parseLevel(config.Logging.Level)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	switch strings.ToLower(config.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	if config.Telemetry.ServiceName == "" {
		return ErrMissingServiceName
	}

	return nil
}

func parseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
