package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stdbtools/spacetime-token/internal/syncer"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect or switch environments (server addresses)",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare `env` behaves like `env current`.
		return envCurrentCmd.RunE(cmd, args)
	},
}

var envCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the current environment from the CLI config",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		current, ok, err := env.currentEnvironment()
		if err != nil {
			return fmt.Errorf("reading current environment: %w", err)
		}
		if !ok {
			fmt.Println("Environment not set.")
			return nil
		}
		fmt.Printf("Current environment: %s\n", current)
		return nil
	},
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known environments from stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Printf("No environments found. Add profiles to %s first.\n", env.Settings.ProfilesFilename)
			return nil
		}

		// Environments are the raw address strings, grouped verbatim.
		byAddress := make(map[string][]string)
		for name, p := range profiles {
			byAddress[p.Address] = append(byAddress[p.Address], name)
		}
		addrs := make([]string, 0, len(byAddress))
		for addr := range byAddress {
			addrs = append(addrs, addr)
		}
		sort.Strings(addrs)

		current, hasCurrent, _ := env.currentEnvironment()

		fmt.Println("Known environments:")
		for _, addr := range addrs {
			names := byAddress[addr]
			sort.Strings(names)
			tag := ""
			if hasCurrent && addr == current {
				tag = " (current)"
			}
			fmt.Printf("- %s%s [profiles: %s]\n", addr, tag, strings.Join(names, ", "))
		}
		return nil
	},
}

var envUseProfile string

var envUseCmd = &cobra.Command{
	Use:   "use <address>",
	Short: "Set the active environment and switch to a matching profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		addr := args[0]

		profiles, err := store.Load(env.ProfilesPath)
		if err != nil {
			return err
		}

		var name string
		if envUseProfile != "" {
			p, exists := profiles[envUseProfile]
			if !exists {
				return fmt.Errorf("profile %q not found in %s", envUseProfile, env.Settings.ProfilesFilename)
			}
			if p.Address != addr {
				return &syncer.AddressMismatchError{Profile: envUseProfile, Stored: p.Address, Requested: addr}
			}
			name = envUseProfile
		} else {
			candidates := syncer.FilterByAddress(profiles, addr)
			if len(candidates) == 0 {
				return fmt.Errorf("no profiles found for environment %q; create one before switching", addr)
			}
			name, err = chooseProfile("Select a profile for this environment", candidates)
			if err != nil {
				return err
			}
		}

		if err := env.activateProfile(name, profiles[name], profiles); err != nil {
			return err
		}
		fmt.Printf("Environment set to %q via profile %q.\n", addr, name)
		return nil
	},
}

func init() {
	envUseCmd.Flags().StringVarP(&envUseProfile, "profile", "p", "", "Profile to activate for this environment")

	envCmd.AddCommand(envCurrentCmd)
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envUseCmd)
}
