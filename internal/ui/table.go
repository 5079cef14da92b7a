package ui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
)

// PrintTable renders data as a boxed table whose first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// SortNatural orders items by key using natural string ordering, so that
// "task 2" sorts before "task 10".
func SortNatural[T any](items []T, key func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		ka, kb := strings.ToLower(key(a)), strings.ToLower(key(b))

		switch {
		case natural.Less(ka, kb):
			return -1
		case natural.Less(kb, ka):
			return 1
		default:
			return 0
		}
	})
}
