package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "CTDP"
	envUser   = envPrefix + "_USER"
	envUserID = envPrefix + "_USER_ID"
)

// viper keys.
const (
	keyWaitMinutes          = "timer.wait_minutes"
	keyFocusMinutes         = "timer.focus_minutes"
	keyTickInterval         = "timer.tick_interval"
	keyTransitionDelay      = "timer.transition_delay"
	keyFadeDelay            = "archive.fade_delay"
	keyStorageDriver        = "storage.driver"
	keyStorageDSN           = "storage.dsn"
	keyUserID               = "user.id"
	keyServerAddr           = "server.addr"
	keyServerJWTSecret      = "server.jwt_secret"
	keyServerTokenTTL       = "server.token_ttl"
	keyNotificationsEnabled = "notifications.enabled"
	keySessionCmd           = "settings.cmd"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.24hr_clock"
	keyLogLevel             = "log.level"
	keyLogPath              = "log.path"
	keyLogMaxSize           = "log.max_size_mb"
	keyLogMaxBackups        = "log.max_backups"
	keyS3Bucket             = "backup.s3.bucket"
	keyS3Region             = "backup.s3.region"
	keyS3Endpoint           = "backup.s3.endpoint"
	keyS3AccessKey          = "backup.s3.access_key"
	keyS3SecretKey          = "backup.s3.secret_key"
	keyS3Prefix             = "backup.s3.prefix"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath, writing the defaults there if it does not exist yet.
// Environment variables prefixed with CTDP_ override file values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
				return errReadConfig.Wrap(err)
			}

			if err := v.WriteConfig(); err != nil {
				return errWriteConfig.Wrap(err)
			}
		}

		bindEnv(v)

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and any prompted values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyWaitMinutes, 0)
	v.SetDefault(keyFocusMinutes, 25)
	v.SetDefault(keyTickInterval, "1s")
	v.SetDefault(keyTransitionDelay, "100ms")
	v.SetDefault(keyFadeDelay, "3s")
	v.SetDefault(keyStorageDriver, DriverBolt)
	v.SetDefault(keyStorageDSN, "")
	v.SetDefault(keyUserID, "")
	v.SetDefault(keyServerAddr, ":8080")
	v.SetDefault(keyServerJWTSecret, "")
	v.SetDefault(keyServerTokenTTL, "24h")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogPath, "")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)
	v.SetDefault(keyS3Bucket, "")
	v.SetDefault(keyS3Region, "us-east-1")
	v.SetDefault(keyS3Endpoint, "")
	v.SetDefault(keyS3AccessKey, "")
	v.SetDefault(keyS3SecretKey, "")
	v.SetDefault(keyS3Prefix, "ctdp")

	if c.prompted {
		v.Set(keyWaitMinutes, c.Timer.WaitMinutes)
		v.Set(keyFocusMinutes, c.Timer.FocusMinutes)
	}
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv(keyUserID, envUserID)
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return err
	}

	// CTDP_USER is a shorthand for CTDP_USER_ID. Viper cannot bind it: a
	// set CTDP_USER shadows the whole user section under AutomaticEnv.
	if c.User.ID == "" {
		if id, ok := os.LookupEnv(envUser); ok {
			c.User.ID = strings.TrimSpace(id)
		}
	}

	return nil
}
