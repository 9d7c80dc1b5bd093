package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/store"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active profile and masked credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}

		if _, err := os.Stat(env.CLIConfigPath); errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("%s not found. No active session.\n", env.Settings.CLIConfigFilename)
			return nil
		}
		doc, err := clidoc.Load(env.CLIConfigPath)
		if err != nil {
			return err
		}

		credential, ok := doc.Scalar(env.Settings.CLITokenKey)
		if !ok {
			fmt.Printf("No active credential (key %q) found in %s.\n", env.Settings.CLITokenKey, env.Settings.CLIConfigFilename)
			return nil
		}

		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}

		found := false
		for _, name := range profiles.Names() {
			if profiles[name].Credential == credential {
				fmt.Printf("Current active profile: %s\n", name)
				fmt.Printf("Address: %s\n", profiles[name].Address)
				found = true
				break
			}
		}
		if !found {
			fmt.Printf("Active credential is set but matches no profile in %s.\n", env.Settings.ProfilesFilename)
		}
		fmt.Printf("Active credential: %s\n", maskCredential(credential))
		return nil
	},
}
