package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ctdp-app/ctdp/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the ctdp app instance.
func Get() *cli.App {
	ctdpApp := &cli.App{
		Name: "ctdp",
		Usage: `
		ctdp keeps a list of todos broken into subtasks and runs focus sessions
		against a selection of them. Focus time is split across the selected
		subtasks, and finished todos are archived automatically.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			todoCommand(),
			subtaskCommand(),
			archiveCommand(),
			sessionCommand(),
			{
				Name:   "stats",
				Usage:  "Show daily and hourly focus statistics for the last 7 days",
				Flags:  []cli.Flag{jsonFlag, pdfFlag, dateFlag},
				Action: statsAction,
			},
			{
				Name:   "serve",
				Usage:  "Serve the JSON API over HTTP",
				Flags:  []cli.Flag{addrFlag},
				Action: serveAction,
			},
			{
				Name:   "token",
				Usage:  "Issue an API bearer token for the configured user",
				Flags:  []cli.Flag{ttlFlag},
				Action: tokenAction,
			},
			{
				Name:   "backup",
				Usage:  "Export all data of the configured user as JSON",
				Flags:  []cli.Flag{outputFlag, s3Flag},
				Action: backupAction,
			},
			{
				Name:   "clear-all",
				Usage:  "Delete every todo, subtask and session of the configured user",
				Flags:  []cli.Flag{yesFlag},
				Action: clearAllAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			userFlag,
			driverFlag,
			dsnFlag,
			waitFlag,
			focusFlag,
			disableNotificationFlag,
			sessionCmdFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return ctdpApp
}

func todoCommand() *cli.Command {
	return &cli.Command{
		Name:  "todo",
		Usage: "Manage active todos",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a todo",
				ArgsUsage: "<title>",
				Action:    todoAddAction,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List active todos and their subtasks",
				Flags:   []cli.Flag{jsonFlag},
				Action:  todoListAction,
			},
			{
				Name:      "rename",
				Usage:     "Change the title of a todo",
				ArgsUsage: "<todo> <title>",
				Action:    todoRenameAction,
			},
			{
				Name:      "rm",
				Usage:     "Delete a todo with its subtasks and sessions",
				ArgsUsage: "<todo>",
				Flags:     []cli.Flag{yesFlag},
				Action:    todoRemoveAction,
			},
		},
	}
}

func subtaskCommand() *cli.Command {
	return &cli.Command{
		Name:  "subtask",
		Usage: "Manage the subtasks of a todo",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a subtask to a todo",
				ArgsUsage: "<todo> <label>",
				Action:    subtaskAddAction,
			},
			{
				Name:      "done",
				Usage:     "Mark a subtask as done",
				ArgsUsage: "<subtask>",
				Action:    subtaskDoneAction(true),
			},
			{
				Name:      "undone",
				Usage:     "Mark a subtask as not done",
				ArgsUsage: "<subtask>",
				Action:    subtaskDoneAction(false),
			},
			{
				Name:      "rename",
				Usage:     "Change the label of a subtask",
				ArgsUsage: "<subtask> <label>",
				Action:    subtaskRenameAction,
			},
			{
				Name:      "rm",
				Usage:     "Delete a subtask",
				ArgsUsage: "<subtask>",
				Action:    subtaskRemoveAction,
			},
		},
	}
}

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Inspect and reconcile archived todos",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List archived todos, most recently archived first",
				Flags:   []cli.Flag{jsonFlag},
				Action:  archiveListAction,
			},
			{
				Name:   "auto",
				Usage:  "Archive every todo whose subtasks are all done",
				Action: archiveAutoAction,
			},
			{
				Name:      "restore",
				Usage:     "Move an archived todo back to the active list",
				ArgsUsage: "<archived todo>",
				Action:    archiveRestoreAction,
			},
		},
	}
}

func sessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Record focus sessions without the timer",
		Subcommands: []*cli.Command{
			{
				Name:  "record",
				Usage: "Record a completed focus session",
				Flags: []cli.Flag{
					subtaskRefFlag,
					durationFlag,
					waitedFlag,
					titleFlag,
					noteFlag,
				},
				Action: sessionRecordAction,
			},
		},
	}
}
