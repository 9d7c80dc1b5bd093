package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/address"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stdbtools/spacetime-token/internal/syncer"
)

var setAddressCmd = &cobra.Command{
	Use:   "set-address <name> <address>",
	Short: "Update the address of an existing profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		name, addr := args[0], args[1]

		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}
		p, exists := profiles[name]
		if !exists {
			return fmt.Errorf("profile %q not found in %s", name, env.Settings.ProfilesFilename)
		}

		previous := p.Address
		p.Address = addr
		profiles[name] = p
		if err := store.Save(env.ProfilesPath, profiles); err != nil {
			return err
		}
		fmt.Printf("Updated address for profile %q to %q.\n", name, addr)

		// Re-point the active session only when it referenced this
		// profile's credential or old address. The credential itself is
		// left alone; only the host side moves.
		if _, err := os.Stat(env.CLIConfigPath); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		doc, err := clidoc.Load(env.CLIConfigPath)
		if err != nil {
			return err
		}
		activeCredential, _ := doc.Scalar(env.Settings.CLITokenKey)
		activeHost, _ := doc.Scalar(syncer.DefaultHostKey)
		if activeCredential != p.Credential && activeHost != previous {
			return nil
		}

		doc.SetScalar(syncer.DefaultHostKey, addr)
		protocol, host := address.Target(addr)
		doc.UpsertServer(name, host, protocol)
		env.Sync.Reconcile(doc, profiles)
		if err := doc.Save(env.CLIConfigPath); err != nil {
			return err
		}
		fmt.Printf("Updated %s in %s to %q.\n", syncer.DefaultHostKey, env.Settings.CLIConfigFilename, addr)
		return nil
	},
}
