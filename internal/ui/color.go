// Package ui holds console presentation helpers shared by the CLI commands
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants of each colour.
var DarkTheme bool

func Green(a any) string {
	if DarkTheme {
		return pterm.LightGreen(a)
	}

	return pterm.Green(a)
}

func Cyan(a any) string {
	if DarkTheme {
		return pterm.LightCyan(a)
	}

	return pterm.Cyan(a)
}

func Yellow(a any) string {
	if DarkTheme {
		return pterm.LightYellow(a)
	}

	return pterm.Yellow(a)
}

func Red(a any) string {
	if DarkTheme {
		return pterm.LightRed(a)
	}

	return pterm.Red(a)
}

// Muted renders secondary text such as ids and timestamps.
func Muted(a any) string {
	return pterm.Gray(a)
}

func Highlight(a any) string {
	if DarkTheme {
		return pterm.LightWhite(a)
	}

	return pterm.Black(a)
}

// Check renders a subtask completion box.
func Check(done bool) string {
	if done {
		return Green("[x]")
	}

	return "[ ]"
}
