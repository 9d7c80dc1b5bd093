package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/store"
)

// adminProfileName is the reserved profile the admin shortcut switches to.
const adminProfileName = "admin"

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Switch to the admin profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}

		p, exists := profiles[adminProfileName]
		if !exists {
			return fmt.Errorf("profile %q not found in %s; create it with a valid credential first",
				adminProfileName, env.Settings.ProfilesFilename)
		}
		return env.activateProfile(adminProfileName, p, profiles)
	},
}
