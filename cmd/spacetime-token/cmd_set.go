package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/store"
)

var setAddressFlag string

var setCmd = &cobra.Command{
	Use:   "set <name> <credential>",
	Short: "Save or update a profile and make it active",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		name, credential := args[0], args[1]
		if credential == "" {
			return fmt.Errorf("credential must not be empty")
		}

		// Default the address to the current environment, falling back
		// to "local" when none is set.
		addr := setAddressFlag
		if addr == "" {
			current, ok, _ := env.currentEnvironment()
			if ok {
				addr = current
			} else {
				addr = store.LocalAddress
			}
		}

		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}
		profile := store.Profile{Credential: credential, Address: addr}
		profiles[name] = profile
		if err := store.Save(env.ProfilesPath, profiles); err != nil {
			return err
		}
		fmt.Printf("Profile %q saved in %s.\n", name, env.Settings.ProfilesFilename)

		return env.activateProfile(name, profile, profiles)
	},
}

func init() {
	setCmd.Flags().StringVar(&setAddressFlag, "address", "", "Server address for the profile (e.g. 'local' or 'https://host/spacetime')")
}
