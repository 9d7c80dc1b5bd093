package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/paths"
	"github.com/stdbtools/spacetime-token/internal/settings"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively edit the tool's configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		appDir, err := paths.AppDir()
		if err != nil {
			return err
		}
		s, err := settings.Load(appDir)
		if err != nil {
			fmt.Printf("Could not load existing settings (%v); starting from defaults.\n", err)
			s = settings.Default()
		}

		if !stdinIsTerminal() {
			return fmt.Errorf("setup is interactive; run it from a terminal")
		}

		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Profiles filename").
					Value(&s.ProfilesFilename),
				huh.NewInput().
					Title("CLI config directory (relative to home)").
					Value(&s.CLIConfigDirFromHome),
				huh.NewInput().
					Title("CLI config filename").
					Value(&s.CLIConfigFilename),
				huh.NewInput().
					Title("CLI credential key").
					Value(&s.CLITokenKey),
			),
		).Run()
		if err != nil {
			return err
		}

		if err := settings.Save(appDir, s); err != nil {
			return err
		}
		fmt.Printf("Configuration saved to %s.\n", settings.File(appDir))
		return nil
	},
}
