package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/store"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		name := args[0]

		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}
		if _, exists := profiles[name]; !exists {
			return fmt.Errorf("profile %q not found in %s; nothing to delete", name, env.Settings.ProfilesFilename)
		}

		ok, err := confirm(fmt.Sprintf("Delete profile %q?", name), deleteForce)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Deletion cancelled.")
			return nil
		}

		delete(profiles, name)
		if err := store.Save(env.ProfilesPath, profiles); err != nil {
			return err
		}
		fmt.Printf("Profile %q deleted from %s.\n", name, env.Settings.ProfilesFilename)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Delete without confirmation")
}
