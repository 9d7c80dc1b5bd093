package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/identity"
	"github.com/stdbtools/spacetime-token/internal/spacetime"
	"github.com/stdbtools/spacetime-token/internal/store"
)

var createAddressFlag string

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a profile via spacetime login and save its credential",
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
		if _, exists := profiles[name]; exists {
			return fmt.Errorf("profile %q already exists in %s; cannot create", name, env.Settings.ProfilesFilename)
		}

		if err := spacetime.Logout(); err != nil {
			return fmt.Errorf("logging out of the spacetime CLI: %w", err)
		}

		addr := createAddressFlag
		if addr == "" {
			addr = store.LocalAddress
		}

		var credential string
		if addr == store.LocalAddress {
			// Local servers go through the CLI's own login flow; the
			// credential is then lifted from the document it wrote.
			fmt.Printf("Follow the prompts from '%s login --server-issued-login %s'.\n", spacetime.Command, addr)
			if err := spacetime.LoginServerIssued(addr); err != nil {
				return fmt.Errorf("logging in: %w", err)
			}
			doc, err := clidoc.Load(env.CLIConfigPath)
			if err != nil {
				return fmt.Errorf("reading CLI config after login: %w", err)
			}
			tok, ok := doc.Scalar(env.Settings.CLITokenKey)
			if !ok {
				return fmt.Errorf("key %q not found in %s after login", env.Settings.CLITokenKey, env.Settings.CLIConfigFilename)
			}
			credential = tok
		} else {
			tok, err := identity.Fetch(addr)
			if err != nil {
				return err
			}
			credential = tok
		}

		profile := store.Profile{Credential: credential, Address: addr}
		profiles[name] = profile
		if err := store.Save(env.ProfilesPath, profiles); err != nil {
			return err
		}
		fmt.Printf("Created profile %q in %s.\n", name, env.Settings.ProfilesFilename)

		return env.activateProfile(name, profile, profiles)
	},
}

func init() {
	createCmd.Flags().StringVar(&createAddressFlag, "address", "", "Server address for the new profile (e.g. 'local' or 'https://host/spacetime')")
}
