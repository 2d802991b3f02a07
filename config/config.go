package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "OTPIQ"

// Override sets a configuration value with the highest precedence, e.g. from
// a command line flag.
type Override func(v *viper.Viper)

// WithValue overrides a single configuration key
func WithValue(key string, value any) Override {
	return func(v *viper.Viper) {
		v.Set(key, value)
	}
}

// Load loads the configuration from file and OTPIQ_* environment variables.
// Searched config files are optional; an explicit configPath must exist.
func Load(configPath string, overrides ...Override) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".otpiq"))
		}

		// Check /etc
		v.AddConfigPath("/etc/otpiq/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	for _, o := range overrides {
		o(v)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "https://api.otpiq.com/api")
	v.SetDefault("timeout", "30s")

	// Send defaults
	v.SetDefault("defaults.channel", "auto")
	v.SetDefault("defaults.digit_count", 6)
	v.SetDefault("defaults.sender_id", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.APIKey == "" || cfg.APIKey == "your-api-key-here" {
		return fmt.Errorf("api_key must be set to a valid API key")
	}

	if cfg.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	validChannels := map[string]bool{
		"auto":     true,
		"sms":      true,
		"whatsapp": true,
		"telegram": true,
	}
	if !validChannels[cfg.Defaults.Channel] {
		return fmt.Errorf("invalid defaults.channel: %s (must be auto, sms, whatsapp or telegram)", cfg.Defaults.Channel)
	}

	if cfg.Defaults.DigitCount < 1 || cfg.Defaults.DigitCount > 12 {
		return fmt.Errorf("invalid defaults.digit_count: %d (must be between 1 and 12)", cfg.Defaults.DigitCount)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
