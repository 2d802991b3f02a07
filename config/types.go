package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	APIKey   string         `mapstructure:"api_key"`
	BaseURL  string         `mapstructure:"base_url"`
	Timeout  time.Duration  `mapstructure:"timeout"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DefaultsConfig holds values used when a send command omits them
type DefaultsConfig struct {
	Channel    string `mapstructure:"channel"`
	DigitCount int    `mapstructure:"digit_count"`
	SenderID   string `mapstructure:"sender_id"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
