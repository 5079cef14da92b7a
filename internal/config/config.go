// Package config is responsible for building the program configuration from
// the config file, the environment and command-line arguments
package config

import (
	"fmt"
	"time"

	"github.com/ctdp-app/ctdp/internal/pathutil"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Backup        BackupConfig       `mapstructure:"backup"`
		Log           LogConfig          `mapstructure:"log"`
		Storage       StorageConfig      `mapstructure:"storage"`
		Server        ServerConfig       `mapstructure:"server"`
		User          UserConfig         `mapstructure:"user"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Timer         TimerConfig        `mapstructure:"timer"`
		Archive       ArchiveConfig      `mapstructure:"archive"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Display       DisplayConfig      `mapstructure:"display"`

		// prompted is set when the first-run prompt supplied timer defaults
		// that the config file should persist.
		prompted bool
	}

	// TimerConfig holds the default schedule and timing engine settings.
	TimerConfig struct {
		WaitMinutes     int           `mapstructure:"wait_minutes"`
		FocusMinutes    int           `mapstructure:"focus_minutes"`
		TickInterval    time.Duration `mapstructure:"tick_interval"`
		TransitionDelay time.Duration `mapstructure:"transition_delay"`
	}

	// ArchiveConfig holds archive reconciliation settings.
	ArchiveConfig struct {
		FadeDelay time.Duration `mapstructure:"fade_delay"`
	}

	// StorageConfig selects the persistence backend.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	}

	// UserConfig holds the identity used by local commands.
	UserConfig struct {
		ID string `mapstructure:"id"`
	}

	// ServerConfig holds HTTP API settings.
	ServerConfig struct {
		Addr      string        `mapstructure:"addr"`
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// SettingsConfig holds miscellaneous settings.
	SettingsConfig struct {
		Cmd string `mapstructure:"cmd"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// LogConfig holds logging settings.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		Path       string `mapstructure:"path"`
		MaxSizeMB  int    `mapstructure:"max_size_mb"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// BackupConfig holds export settings.
	BackupConfig struct {
		S3 S3Config `mapstructure:"s3"`
	}

	// S3Config holds the S3-compatible bucket used for backups.
	S3Config struct {
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Prefix    string `mapstructure:"prefix"`
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DriverBolt     = "bolt"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// StorageDSN returns the configured DSN, or the default data file for
// file-based drivers.
func (c *Config) StorageDSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		return pathutil.SQLiteFilePath()
	case DriverPostgres:
		return ""
	default:
		return pathutil.BoltFilePath()
	}
}

// LogPath returns the configured log file or the default one.
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}

	return pathutil.LogFilePath()
}

// FocusSeconds returns the default focus length in seconds.
func (c *Config) FocusSeconds() int {
	return c.Timer.FocusMinutes * 60
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"driver=%s user=%q wait=%dm focus=%dm",
		c.Storage.Driver,
		c.User.ID,
		c.Timer.WaitMinutes,
		c.Timer.FocusMinutes,
	)
}
