package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stdbtools/spacetime-token/internal/syncer"
)

var switchAddressFlag string

var switchCmd = &cobra.Command{
	Use:   "switch [name]",
	Short: "Switch the active session to a stored profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}

		var name string
		if len(args) == 1 {
			name = args[0]
			p, exists := profiles[name]
			if !exists {
				return fmt.Errorf("profile %q not found in %s (available: %s)",
					name, env.Settings.ProfilesFilename, strings.Join(profiles.Names(), ", "))
			}
			if switchAddressFlag != "" && p.Address != switchAddressFlag {
				return &syncer.AddressMismatchError{Profile: name, Stored: p.Address, Requested: switchAddressFlag}
			}
		} else {
			candidates := profiles.Names()
			if switchAddressFlag != "" {
				fmt.Printf("Environment filter: %s\n", switchAddressFlag)
				candidates = syncer.FilterByAddress(profiles, switchAddressFlag)
			}
			if len(candidates) == 0 {
				if switchAddressFlag != "" {
					return fmt.Errorf("no profiles found in %s for environment %q", env.Settings.ProfilesFilename, switchAddressFlag)
				}
				return fmt.Errorf("no profiles found in %s", env.Settings.ProfilesFilename)
			}
			name, err = chooseProfile("Select a profile to switch to", candidates)
			if err != nil {
				return err
			}
		}

		return env.activateProfile(name, profiles[name], profiles)
	},
}

func init() {
	switchCmd.Flags().StringVar(&switchAddressFlag, "address", "", "Only consider profiles with this exact address")
}
