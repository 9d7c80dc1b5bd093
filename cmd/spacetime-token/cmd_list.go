package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stdbtools/spacetime-token/internal/syncer"
)

var listEnvOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}

		// Best-effort: the active credential only drives the (current)
		// marker, so a missing or unreadable document is not an error.
		var activeCredential string
		if doc, err := clidoc.Load(env.CLIConfigPath); err == nil {
			if tok, ok := doc.Scalar(env.Settings.CLITokenKey); ok {
				activeCredential = tok
			}
		}

		names := profiles.Names()
		if listEnvOnly {
			current, ok, err := env.currentEnvironment()
			if err != nil {
				return fmt.Errorf("reading current environment: %w", err)
			}
			if ok {
				fmt.Printf("Current environment: %s\n", current)
			} else {
				fmt.Println("Environment not set; listing all profiles.")
			}
			names = filterForEnvironment(profiles, current, ok)
		}

		if len(names) == 0 {
			fmt.Printf("No profiles found in %s.\n", env.Settings.ProfilesFilename)
			return nil
		}

		fmt.Printf("Available profiles in %s:\n", env.Settings.ProfilesFilename)
		for _, name := range names {
			p := profiles[name]
			line := fmt.Sprintf("- %s (address: %s)", name, p.Address)
			if activeCredential != "" && p.Credential == activeCredential {
				line += " (current)"
			}
			fmt.Println(line)
		}
		return nil
	},
}

// filterForEnvironment narrows profile names to the current environment.
// When no environment is set the filter is skipped, not emptied, so the
// full list is shown.
func filterForEnvironment(profiles store.Profiles, current string, ok bool) []string {
	if !ok {
		return profiles.Names()
	}
	return syncer.FilterByAddress(profiles, current)
}

func init() {
	listCmd.Flags().BoolVar(&listEnvOnly, "env", false, "Only show profiles for the current environment")
}
