package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stdbtools/spacetime-token/internal/syncer"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current active session as a new profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		name := args[0]

		// This is the one operation that reads the document into the
		// store instead of the other way around.
		doc, err := clidoc.Load(env.CLIConfigPath)
		if err != nil {
			return err
		}

		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}
		if _, exists := profiles[name]; exists {
			return fmt.Errorf("profile %q already exists in %s; use a different name or delete it first", name, env.Settings.ProfilesFilename)
		}

		credential, ok := doc.Scalar(env.Settings.CLITokenKey)
		if !ok {
			return fmt.Errorf("not logged in: key %q not found in %s", env.Settings.CLITokenKey, env.Settings.CLIConfigFilename)
		}
		host, ok := doc.Scalar(syncer.DefaultHostKey)
		if !ok {
			return fmt.Errorf("%s not found in %s; cannot save profile", syncer.DefaultHostKey, env.Settings.CLIConfigFilename)
		}

		profiles[name] = store.Profile{Credential: credential, Address: host}
		if err := store.Save(env.ProfilesPath, profiles); err != nil {
			return err
		}
		fmt.Printf("Saved current session as profile %q in %s.\n", name, env.Settings.ProfilesFilename)
		return nil
	},
}
