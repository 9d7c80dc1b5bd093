package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/store"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}

		ok, err := confirm(fmt.Sprintf("Reset %s? This deletes all profiles.", env.Settings.ProfilesFilename), resetForce)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}

		if err := store.Save(env.ProfilesPath, store.Profiles{}); err != nil {
			return err
		}
		fmt.Printf("%s has been reset.\n", env.Settings.ProfilesFilename)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Reset without confirmation")
}
