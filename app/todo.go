package app

import (
	"os"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ctdp-app/ctdp/internal/hook"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/internal/timeutil"
	"github.com/ctdp-app/ctdp/internal/ui"
	"github.com/ctdp-app/ctdp/report"
	"github.com/ctdp-app/ctdp/tracker"
)

// restArgs joins the arguments from position i onwards so that titles do
// not need quoting.
func restArgs(ctx *cli.Context, i int) string {
	args := ctx.Args().Slice()
	if i >= len(args) {
		return ""
	}

	return strings.Join(args[i:], " ")
}

func activeTodos(ctx *cli.Context, svc *tracker.Service, userID string) ([]models.Todo, error) {
	todos, err := svc.ListActiveTodos(ctx.Context, userID)
	if err != nil {
		return nil, err
	}

	sortTodos(todos)

	return todos, nil
}

func findSubtask(
	ctx *cli.Context,
	svc *tracker.Service,
	userID, ref string,
) (*models.Subtask, error) {
	todos, err := activeTodos(ctx, svc, userID)
	if err != nil {
		return nil, err
	}

	return resolveSubtask(todos, ref)
}

func todoAddAction(ctx *cli.Context) error {
	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todo, err := svc.CreateTodo(ctx.Context, userID, restArgs(ctx, 0))
		if err != nil {
			return err
		}

		report.Success("created %q (%s)", todo.Title, shortID(todo.ID))

		return nil
	})
}

func todoListAction(ctx *cli.Context) error {
	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := activeTodos(ctx, svc, userID)
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(os.Stdout, todos)
		}

		if len(todos) == 0 {
			pterm.Info.Println(noTodosMsg)
			return nil
		}

		printTodosTable(os.Stdout, todos)

		return nil
	})
}

func todoRenameAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errMissingArgs.Fmt("<todo> <title>")
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := activeTodos(ctx, svc, userID)
		if err != nil {
			return err
		}

		todo, err := resolveTodo(todos, ctx.Args().First())
		if err != nil {
			return err
		}

		updated, err := svc.UpdateTodoTitle(ctx.Context, userID, todo.ID, restArgs(ctx, 1))
		if err != nil {
			return err
		}

		report.Success("renamed %q to %q", todo.Title, updated.Title)

		return nil
	})
}

func subtaskAddAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errMissingArgs.Fmt("<todo> <label>")
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := activeTodos(ctx, svc, userID)
		if err != nil {
			return err
		}

		todo, err := resolveTodo(todos, ctx.Args().First())
		if err != nil {
			return err
		}

		sub, err := svc.AddSubtask(ctx.Context, userID, todo.ID, restArgs(ctx, 1))
		if err != nil {
			return err
		}

		report.Success("added %q to %q", sub.Label, todo.Title)

		return nil
	})
}

// subtaskDoneAction toggles a subtask. Completing the last open subtask of a
// todo archives it right away; the TUI waits for the fade delay instead.
func subtaskDoneAction(done bool) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.NArg() < 1 {
			return errMissingArgs.Fmt("<subtask>")
		}

		return withService(ctx, func(svc *tracker.Service, userID string) error {
			sub, err := findSubtask(ctx, svc, userID, ctx.Args().First())
			if err != nil {
				return err
			}

			if _, err := svc.UpdateSubtask(ctx.Context, userID, sub.ID,
				models.SubtaskUpdate{Done: &done}); err != nil {
				return err
			}

			report.Success("%s %q", ui.Check(done), sub.Label)

			if !done {
				return nil
			}

			n, err := svc.AutoArchive(ctx.Context, userID)
			if err != nil {
				return err
			}

			if n > 0 {
				report.Info("archived %d completed todo(s)", n)
			}

			return nil
		})
	}
}

func subtaskRenameAction(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return errMissingArgs.Fmt("<subtask> <label>")
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		sub, err := findSubtask(ctx, svc, userID, ctx.Args().First())
		if err != nil {
			return err
		}

		label := restArgs(ctx, 1)

		updated, err := svc.UpdateSubtask(ctx.Context, userID, sub.ID,
			models.SubtaskUpdate{Label: &label})
		if err != nil {
			return err
		}

		report.Success("renamed %q to %q", sub.Label, updated.Label)

		return nil
	})
}

func archiveListAction(ctx *cli.Context) error {
	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := svc.ListArchivedTodos(ctx.Context, userID)
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(os.Stdout, todos)
		}

		if len(todos) == 0 {
			pterm.Info.Println(noArchivedMsg)
			return nil
		}

		printArchivedTable(os.Stdout, todos)

		return nil
	})
}

func archiveAutoAction(ctx *cli.Context) error {
	return withService(ctx, func(svc *tracker.Service, userID string) error {
		n, err := svc.AutoArchive(ctx.Context, userID)
		if err != nil {
			return err
		}

		report.Success("archived %d todo(s)", n)

		return nil
	})
}

// archiveRestoreAction restores an archived todo, addressed by its position
// in 'ctdp archive list' or by id.
func archiveRestoreAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingArgs.Fmt("<archived todo>")
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := svc.ListArchivedTodos(ctx.Context, userID)
		if err != nil {
			return err
		}

		todo, err := resolveTodo(todos, ctx.Args().First())
		if err != nil {
			return err
		}

		if err := svc.RestoreTodo(ctx.Context, userID, todo.ID); err != nil {
			return err
		}

		report.Success("restored %q", todo.Title)

		return nil
	})
}

// sessionRecordAction saves a session as if it had been timed, then runs
// the post-session command.
func sessionRecordAction(ctx *cli.Context) error {
	e := envOf(ctx)

	focus := e.cfg.FocusSeconds()
	if ctx.IsSet("duration") {
		focus = int(ctx.Duration("duration").Seconds())
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := activeTodos(ctx, svc, userID)
		if err != nil {
			return err
		}

		var subtasks []*models.Subtask

		for _, ref := range ctx.StringSlice("subtask") {
			sub, err := resolveSubtask(todos, ref)
			if err != nil {
				return err
			}

			if !slices.ContainsFunc(subtasks, func(s *models.Subtask) bool {
				return s.ID == sub.ID
			}) {
				subtasks = append(subtasks, sub)
			}
		}

		selected := selectionOf(todos, subtasks)

		title := ctx.String("title")
		if strings.TrimSpace(title) == "" {
			title = models.SessionTitle(selected)
		}

		req := models.SessionRequest{
			TodoTitle:    title,
			Note:         ctx.String("note"),
			SubtaskIDs:   models.SubtaskIDs(selected),
			WaitSeconds:  int(ctx.Duration("waited").Seconds()),
			FocusSeconds: focus,
		}

		res, err := svc.RecordSession(ctx.Context, userID, req)
		if err != nil {
			return err
		}

		report.Success("recorded %q (%s): %d sessions, %d minutes in total",
			res.Log.TodoTitle,
			timeutil.Clock(req.FocusSeconds),
			res.Totals.SessionsCount,
			res.Totals.TotalMinutes,
		)

		runner := hook.Runner{Cmd: e.cfg.Settings.Cmd}

		return runner.Run(ctx.Context, hook.Event{
			Title:        res.Log.TodoTitle,
			Note:         res.Log.Note,
			FocusSeconds: req.FocusSeconds,
			WaitSeconds:  req.WaitSeconds,
		})
	})
}
