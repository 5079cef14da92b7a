package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			WaitMinutes:     0,
			FocusMinutes:    25,
			TickInterval:    time.Second,
			TransitionDelay: 100 * time.Millisecond,
		},
		Archive: ArchiveConfig{FadeDelay: 3 * time.Second},
		Storage: StorageConfig{Driver: DriverBolt},
		Log:     LogConfig{Level: "info"},
	}
}

func TestWithViperConfigWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.Equal(t, 0, cfg.Timer.WaitMinutes)
	assert.Equal(t, 25, cfg.Timer.FocusMinutes)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, 100*time.Millisecond, cfg.Timer.TransitionDelay)
	assert.Equal(t, 3*time.Second, cfg.Archive.FadeDelay)
	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Server.TokenTTL)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, 1500, cfg.FocusSeconds())
}

func TestWithViperConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	content := `timer:
  wait_minutes: 5
  focus_minutes: 50
storage:
  driver: sqlite
  dsn: /tmp/ctdp-test.sqlite
user:
  id: bob
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Timer.WaitMinutes)
	assert.Equal(t, 50, cfg.Timer.FocusMinutes)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/ctdp-test.sqlite", cfg.StorageDSN())
	assert.Equal(t, "bob", cfg.User.ID)
	// keys missing from the file fall back to defaults
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
}

func TestWithViperConfigEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	t.Setenv("CTDP_TIMER_FOCUS_MINUTES", "45")
	t.Setenv("CTDP_USER", "alice")

	cfg, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Timer.FocusMinutes)
	assert.Equal(t, "alice", cfg.User.ID)
}

func TestUserFromEnvironment(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
		file string
		want string
	}{
		{
			name: "shorthand",
			env:  map[string]string{"CTDP_USER": " alice "},
			want: "alice",
		},
		{
			name: "shorthand overrides the file",
			env:  map[string]string{"CTDP_USER": "alice"},
			file: "user:\n  id: bob\n",
			want: "alice",
		},
		{
			name: "full key",
			env:  map[string]string{"CTDP_USER_ID": "carol"},
			want: "carol",
		},
		{
			name: "file only",
			file: "user:\n  id: bob\n",
			want: "bob",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")

			if tc.file != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.file), 0o600))
			}

			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			cfg, err := New(WithViperConfig(path))
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.User.ID)
		})
	}
}

func TestPromptedValuesArePersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	c := &Config{}
	applyPromptOptions(c, PromptOptions{WaitMinutes: 5, FocusMinutes: 50})
	require.NoError(t, WithViperConfig(path)(c))

	reloaded, err := New(WithViperConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 5, reloaded.Timer.WaitMinutes)
	assert.Equal(t, 50, reloaded.Timer.FocusMinutes)
}

func TestApplyCLIOptions(t *testing.T) {
	c := validConfig()
	c.Notifications.Enabled = true

	applyCLIOptions(c, CLIOptions{
		User:          " carol ",
		Driver:        "SQLite",
		Focus:         40,
		focusSet:      true,
		Wait:          0,
		waitSet:       false,
		DisableNotify: true,
	})

	assert.Equal(t, "carol", c.User.ID)
	assert.Equal(t, DriverSQLite, c.Storage.Driver)
	assert.Equal(t, 40, c.Timer.FocusMinutes)
	assert.Equal(t, 0, c.Timer.WaitMinutes)
	assert.False(t, c.Notifications.Enabled)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(_ *Config) {},
		},
		{
			name:    "negative wait",
			mutate:  func(c *Config) { c.Timer.WaitMinutes = -1 },
			wantErr: errInvalidMinutes,
		},
		{
			name:    "zero focus",
			mutate:  func(c *Config) { c.Timer.FocusMinutes = 0 },
			wantErr: errInvalidMinutes,
		},
		{
			name:    "zero tick interval",
			mutate:  func(c *Config) { c.Timer.TickInterval = 0 },
			wantErr: errInvalidInterval,
		},
		{
			name:    "negative fade delay",
			mutate:  func(c *Config) { c.Archive.FadeDelay = -time.Second },
			wantErr: errNegativeDelay,
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "mongo" },
			wantErr: errUnknownDriver,
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Storage.Driver = DriverPostgres },
			wantErr: errMissingDSN,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: errUnknownLogLevel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)

			err := c.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateServer(t *testing.T) {
	c := validConfig()
	c.Server.TokenTTL = time.Hour

	assert.ErrorIs(t, c.ValidateServer(), errMissingJWTSecret)

	c.Server.JWTSecret = "s3cret"
	assert.NoError(t, c.ValidateServer())
}

func TestValidateBackup(t *testing.T) {
	c := validConfig()

	assert.ErrorIs(t, c.ValidateBackup(), errMissingBucket)

	c.Backup.S3.Bucket = "ctdp-backups"
	assert.NoError(t, c.ValidateBackup())
}
