package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/report"
	"github.com/ctdp-app/ctdp/tracker"
)

// confirm prints warning and reports whether the user answered yes.
func confirm(w io.Writer, r io.Reader, warning string) bool {
	fmt.Fprint(w, pterm.Warning.Sprint(warning+" [y/N] "))

	answer, _ := bufio.NewReader(r).ReadString('\n')

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// todoRemoveAction deletes a todo after showing it and asking for
// confirmation.
func todoRemoveAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingArgs.Fmt("<todo>")
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		todos, err := svc.ListActiveTodos(ctx.Context, userID)
		if err != nil {
			return err
		}

		sortTodos(todos)

		todo, err := resolveTodo(todos, ctx.Args().First())
		if err != nil {
			return err
		}

		if !ctx.Bool("yes") {
			printTodosTable(os.Stdout, []models.Todo{*todo})

			if !confirm(os.Stdout, os.Stdin,
				"The todo above will be deleted permanently with its sessions. Proceed?") {
				return nil
			}
		}

		if err := svc.DeleteTodo(ctx.Context, userID, todo.ID); err != nil {
			return err
		}

		report.Success("deleted %q", todo.Title)

		return nil
	})
}

func subtaskRemoveAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return errMissingArgs.Fmt("<subtask>")
	}

	return withService(ctx, func(svc *tracker.Service, userID string) error {
		sub, err := findSubtask(ctx, svc, userID, ctx.Args().First())
		if err != nil {
			return err
		}

		if err := svc.DeleteSubtask(ctx.Context, userID, sub.ID); err != nil {
			return err
		}

		report.Success("deleted subtask %q", sub.Label)

		return nil
	})
}

// clearAllAction deletes all data of the configured user.
func clearAllAction(ctx *cli.Context) error {
	return withService(ctx, func(svc *tracker.Service, userID string) error {
		if !ctx.Bool("yes") && !confirm(os.Stdout, os.Stdin,
			fmt.Sprintf("Every todo, subtask and session of %q will be deleted permanently. Proceed?", userID)) {
			return nil
		}

		if err := svc.ClearAll(ctx.Context, userID); err != nil {
			return err
		}

		report.Success("all data cleared")

		return nil
	})
}
