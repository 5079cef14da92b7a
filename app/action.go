package app

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ctdp-app/ctdp/backup"
	"github.com/ctdp-app/ctdp/internal/config"
	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/osutil"
	"github.com/ctdp-app/ctdp/internal/pathutil"
	"github.com/ctdp-app/ctdp/internal/static"
	"github.com/ctdp-app/ctdp/internal/timeutil"
	"github.com/ctdp-app/ctdp/internal/ui"
	"github.com/ctdp-app/ctdp/report"
	"github.com/ctdp-app/ctdp/server"
	"github.com/ctdp-app/ctdp/stats"
	"github.com/ctdp-app/ctdp/store"
	"github.com/ctdp-app/ctdp/timer"
	"github.com/ctdp-app/ctdp/tracker"
)

const (
	envNoColor     = "NO_COLOR"
	envCtdpNoColor = "CTDP_NO_COLOR"

	metadataKey = "ctdp"
)

// env is the state shared by every action once beforeAction has run.
type env struct {
	cfg       *config.Config
	log       *slog.Logger
	logCloser io.Closer
	clock     clockwork.Clock
}

func envOf(ctx *cli.Context) *env {
	e, _ := ctx.App.Metadata[metadataKey].(*env)
	return e
}

// withService opens the configured store and hands a tracker service for the
// configured user to fn. The store is closed when fn returns.
func withService(
	ctx *cli.Context,
	fn func(svc *tracker.Service, userID string) error,
) error {
	e := envOf(ctx)

	db, err := store.Open(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	svc := tracker.New(db,
		tracker.WithClock(e.clock),
		tracker.WithLogger(e.log),
	)

	return fn(svc, e.cfg.User.ID)
}

// defaultAction opens the board and timer TUI.
func defaultAction(ctx *cli.Context) error {
	e := envOf(ctx)

	if e.cfg.User.ID == "" {
		return tracker.ErrUnauthorized
	}

	return withService(ctx, func(svc *tracker.Service, _ string) error {
		m := timer.NewModel(ctx.Context, e.cfg, svc, e.log)
		defer m.Close()

		p := tea.NewProgram(m, tea.WithContext(ctx.Context), tea.WithReportFocus())

		_, err := p.Run()

		return err
	})
}

// statsAction prints the 7-day report ending on --date, or writes it as
// JSON or PDF.
func statsAction(ctx *cli.Context) error {
	e := envOf(ctx)

	at, err := timeutil.FromStr(ctx.String("date"), e.clock.Now())
	if err != nil {
		return err
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		r, err := svc.StatsAt(ctx.Context, userID, at)
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return stats.WriteJSON(os.Stdout, *r)
		}

		totals, err := svc.Totals(ctx.Context, userID)
		if err != nil {
			return err
		}

		if path := ctx.String("pdf"); path != "" {
			if err := stats.WritePDF(path, *r, totals, at); err != nil {
				return err
			}

			report.Success("report written to %s", path)

			return nil
		}

		stats.Print(os.Stdout, *r, totals)

		return nil
	})
}

// serveAction runs the HTTP API until the process is interrupted.
func serveAction(ctx *cli.Context) error {
	e := envOf(ctx)

	if addr := ctx.String("addr"); addr != "" {
		e.cfg.Server.Addr = addr
	}

	if err := e.cfg.ValidateServer(); err != nil {
		return err
	}

	db, err := store.Open(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	svc := tracker.New(db,
		tracker.WithClock(e.clock),
		tracker.WithLogger(e.log),
	)

	report.Info("listening on %s", e.cfg.Server.Addr)

	return server.New(svc, e.cfg.Server, e.log).Run(ctx.Context)
}

// tokenAction prints a bearer token for the configured user.
func tokenAction(ctx *cli.Context) error {
	e := envOf(ctx)

	if err := e.cfg.ValidateServer(); err != nil {
		return err
	}

	ttl := e.cfg.Server.TokenTTL
	if ctx.IsSet("ttl") {
		ttl = ctx.Duration("ttl")
	}

	token, err := server.GenerateToken(
		e.cfg.User.ID,
		[]byte(e.cfg.Server.JWTSecret),
		ttl,
		e.clock.Now(),
	)
	if err != nil {
		return err
	}

	pterm.Println(token)

	return nil
}

// backupAction writes the export to a local file, or uploads it with --s3.
func backupAction(ctx *cli.Context) error {
	e := envOf(ctx)
	toS3 := ctx.Bool("s3")

	if toS3 {
		if err := e.cfg.ValidateBackup(); err != nil {
			return err
		}
	}

	db, err := store.Open(ctx.Context, e.cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	now := e.clock.Now()

	export, err := backup.Collect(ctx.Context, db, e.cfg.User.ID, now)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	if err := backup.Write(&buf, export); err != nil {
		return err
	}

	name := backup.FileName(now)

	if toS3 {
		key := backup.Key(e.cfg.Backup.S3, e.cfg.User.ID, name)

		if err := backup.Upload(ctx.Context, e.cfg.Backup.S3, key, buf.Bytes()); err != nil {
			return err
		}

		e.log.InfoContext(ctx.Context, "backup uploaded",
			slog.String("bucket", e.cfg.Backup.S3.Bucket),
			slog.String("key", key),
		)
		report.Success("backup uploaded to s3://%s/%s", e.cfg.Backup.S3.Bucket, key)

		return nil
	}

	path := ctx.String("output")
	if path == "" {
		path = name
	}

	if err := writeFile(path, buf.Bytes()); err != nil {
		return err
	}

	report.Success("backup written to %s", path)

	return nil
}

func writeFile(path string, data []byte) error {
	if err := osutil.EnsureParentDir(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, osutil.FilePermission)
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	_, noColor := os.LookupEnv(envNoColor)
	_, ctdpNoColor := os.LookupEnv(envCtdpNoColor)

	if noColor || ctdpNoColor || ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	if err := static.Install(); err != nil {
		return err
	}

	configPath := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(configPath),
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	log, closer := logging.New(cfg)
	slog.SetDefault(log)

	if ctx.App.Metadata == nil {
		ctx.App.Metadata = make(map[string]any)
	}

	ctx.App.Metadata[metadataKey] = &env{
		cfg:       cfg,
		log:       log,
		logCloser: closer,
		clock:     clockwork.NewRealClock(),
	}

	log.DebugContext(ctx.Context, "config loaded", slog.String("config", cfg.String()))

	return nil
}

func afterAction(ctx *cli.Context) error {
	e := envOf(ctx)
	if e == nil {
		return nil
	}

	e.log.InfoContext(ctx.Context, "exiting ctdp")

	return e.logCloser.Close()
}
