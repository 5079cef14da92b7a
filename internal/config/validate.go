package config

import (
	"slices"
	"strings"
)

const maxMinutes = 720 // 12 hours

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTimer(); err != nil {
		return err
	}

	if c.Archive.FadeDelay < 0 {
		return errNegativeDelay.Fmt("archive.fade_delay")
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if c.Log.Level != "" &&
		!slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		return errUnknownLogLevel.Fmt(c.Log.Level)
	}

	return nil
}

func (c *Config) validateTimer() error {
	t := c.Timer

	if t.WaitMinutes < 0 || t.WaitMinutes > maxMinutes {
		return errInvalidMinutes.Fmt("wait", 0, maxMinutes, t.WaitMinutes)
	}

	if t.FocusMinutes < 1 || t.FocusMinutes > maxMinutes {
		return errInvalidMinutes.Fmt("focus", 1, maxMinutes, t.FocusMinutes)
	}

	if t.TickInterval <= 0 {
		return errInvalidInterval.Fmt("timer.tick_interval")
	}

	if t.TransitionDelay < 0 {
		return errNegativeDelay.Fmt("timer.transition_delay")
	}

	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Driver {
	case DriverBolt, DriverSQLite:
		return nil
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return errMissingDSN.Fmt(c.Storage.Driver)
		}

		return nil
	default:
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}
}

// ValidateServer checks the settings needed by the HTTP API.
func (c *Config) ValidateServer() error {
	if strings.TrimSpace(c.Server.JWTSecret) == "" {
		return errMissingJWTSecret
	}

	if c.Server.TokenTTL <= 0 {
		return errInvalidInterval.Fmt("server.token_ttl")
	}

	return nil
}

// ValidateBackup checks the settings needed to upload backups to S3.
func (c *Config) ValidateBackup() error {
	if c.Backup.S3.Bucket == "" {
		return errMissingBucket
	}

	return nil
}
