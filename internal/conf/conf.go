package conf

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	// BotToken is the Telegram bot transport credential
	BotToken string `mapstructure:"BOT_TOKEN"`

	// AdminPassword is the shared secret gating the admin session
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// DBPath is the sqlite database file location
	DBPath string `mapstructure:"DB_PATH"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// PollTimeoutSeconds is the long-poll timeout
	PollTimeoutSeconds int `mapstructure:"POLL_TIMEOUT_SECONDS"`
}

// Load loads configuration from the environment
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("BOT_TOKEN", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("DB_PATH", defaultDBPath())
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("POLL_TIMEOUT_SECONDS", 10)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultDBPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".chatwarden", "chatwarden.db")
}

// PollTimeout returns the long-poll timeout as a duration
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutSeconds) * time.Second
}

// Validate validates the configuration. A missing credential is fatal at
// startup, before the event loop begins.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return &ConfigError{Field: "BOT_TOKEN", Message: "required"}
	}
	if c.AdminPassword == "" {
		return &ConfigError{Field: "ADMIN_PASSWORD", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
