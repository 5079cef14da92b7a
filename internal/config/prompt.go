package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
 ██████╗████████╗██████╗ ██████╗
██╔════╝╚══██╔══╝██╔══██╗██╔══██╗
██║        ██║   ██║  ██║██████╔╝
██║        ██║   ██║  ██║██╔═══╝
╚██████╗   ██║   ██████╔╝██║
 ╚═════╝   ╚═╝   ╚═════╝ ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	WaitMinutes  int
	FocusMinutes int
}

// WithPromptConfig returns an Option that asks for the default schedule
// when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure ctdp for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'ctdp edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Wait before focusing").
				Options(
					huh.NewOption("No wait", 0).Selected(true),
					huh.NewOption("1 minute", 1),
					huh.NewOption("5 minutes", 5),
					huh.NewOption("10 minutes", 10),
				).
				Value(&opts.WaitMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Focus session length").
				Options(
					huh.NewOption("25 minutes", 25).Selected(true),
					huh.NewOption("35 minutes", 35),
					huh.NewOption("50 minutes", 50),
					huh.NewOption("60 minutes", 60),
					huh.NewOption("90 minutes", 90),
				).
				Value(&opts.FocusMinutes),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions records the answers so that WithViperConfig writes them
// into the new config file instead of the built-in defaults.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Timer.WaitMinutes = opts.WaitMinutes
	c.Timer.FocusMinutes = opts.FocusMinutes
	c.prompted = true
}
