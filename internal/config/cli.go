package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	User          string
	Driver        string
	DSN           string
	SessionCmd    string
	Wait          int
	Focus         int
	DisableNotify bool
	waitSet       bool
	focusSet      bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			User:          ctx.String("user"),
			Driver:        ctx.String("driver"),
			DSN:           ctx.String("dsn"),
			SessionCmd:    ctx.String("session-cmd"),
			Wait:          ctx.Int("wait"),
			Focus:         ctx.Int("focus"),
			DisableNotify: ctx.Bool("disable-notification"),
			waitSet:       ctx.IsSet("wait"),
			focusSet:      ctx.IsSet("focus"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.User != "" {
		c.User.ID = strings.TrimSpace(opts.User)
	}

	if opts.Driver != "" {
		c.Storage.Driver = strings.ToLower(opts.Driver)
	}

	if opts.DSN != "" {
		c.Storage.DSN = opts.DSN
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.waitSet {
		c.Timer.WaitMinutes = opts.Wait
	}

	if opts.focusSet {
		c.Timer.FocusMinutes = opts.Focus
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}
}
