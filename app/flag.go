package app

import "github.com/urfave/cli/v2"

var (
	userFlag = &cli.StringFlag{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Identity that owns the todos and sessions (overrides user.id)",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Storage backend: bolt, sqlite or postgres",
	}

	dsnFlag = &cli.StringFlag{
		Name:  "dsn",
		Usage: "Database file path or connection string for the storage backend",
	}

	waitFlag = &cli.IntFlag{
		Name:    "wait",
		Aliases: []string{"w"},
		Usage:   "Minutes to wait before the focus phase starts (default: 0)",
	}

	focusFlag = &cli.IntFlag{
		Name:    "focus",
		Aliases: []string{"f"},
		Usage:   "Focus duration in minutes (default: 25)",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a focus phase ends",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each saved session",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	pdfFlag = &cli.StringFlag{
		Name:  "pdf",
		Usage: "Write the report to a PDF file",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Reference date of the report (e.g. 'yesterday', '2025-03-01'). Defaults to today",
	}

	addrFlag = &cli.StringFlag{
		Name:  "addr",
		Usage: "Address to listen on (overrides server.addr)",
	}

	ttlFlag = &cli.DurationFlag{
		Name:  "ttl",
		Usage: "Token lifetime (overrides server.token_ttl)",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the export to this file instead of the current directory",
	}

	s3Flag = &cli.BoolFlag{
		Name:  "s3",
		Usage: "Upload the export to the bucket configured under backup.s3",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}

	subtaskRefFlag = &cli.StringSliceFlag{
		Name:    "subtask",
		Aliases: []string{"s"},
		Usage:   "Subtask to credit with the focus time (repeatable)",
	}

	durationFlag = &cli.DurationFlag{
		Name:  "duration",
		Usage: "Focus time of the session (defaults to timer.focus_minutes)",
	}

	waitedFlag = &cli.DurationFlag{
		Name:  "waited",
		Usage: "Wait time that preceded the focus phase",
	}

	titleFlag = &cli.StringFlag{
		Name:    "title",
		Aliases: []string{"t"},
		Usage:   "Session title (derived from the selected subtasks when omitted)",
	}

	noteFlag = &cli.StringFlag{
		Name:    "note",
		Aliases: []string{"n"},
		Usage:   "Optional note saved with the session",
	}
)
