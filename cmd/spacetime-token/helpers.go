package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/paths"
	"github.com/stdbtools/spacetime-token/internal/settings"
	"github.com/stdbtools/spacetime-token/internal/store"
	"github.com/stdbtools/spacetime-token/internal/syncer"
)

// appEnv bundles the per-invocation configuration every command needs.
// It is built once at the top of each RunE and passed down; there is no
// ambient global state.
type appEnv struct {
	Settings      settings.Settings
	AppDir        string
	ProfilesPath  string
	CLIConfigPath string
	Sync          syncer.Engine
}

func loadEnv() (appEnv, error) {
	appDir, err := paths.AppDir()
	if err != nil {
		return appEnv{}, err
	}
	s, err := settings.Load(appDir)
	if err != nil {
		return appEnv{}, fmt.Errorf("loading settings: %w", err)
	}
	cliPath, err := paths.CLIConfigFile(s)
	if err != nil {
		return appEnv{}, err
	}
	return appEnv{
		Settings:      s,
		AppDir:        appDir,
		ProfilesPath:  paths.ProfilesFile(appDir, s),
		CLIConfigPath: cliPath,
		Sync:          syncer.Engine{TokenKey: s.CLITokenKey},
	}, nil
}

// currentEnvironment reads default_host from the CLI config document.
// A missing file or key means no environment is set.
func (e appEnv) currentEnvironment() (string, bool, error) {
	if _, err := os.Stat(e.CLIConfigPath); errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	doc, err := clidoc.Load(e.CLIConfigPath)
	if err != nil {
		return "", false, err
	}
	host, ok := doc.Scalar(syncer.DefaultHostKey)
	return host, ok, nil
}

// activateProfile loads the CLI document, applies the profile (activate
// first, then the full-store reconcile), and writes the document back.
// Callers must have persisted the profile store before calling this, so
// a failure here leaves the profile recorded and only the session stale.
func (e appEnv) activateProfile(name string, p store.Profile, all store.Profiles) error {
	doc, err := clidoc.LoadOrInit(e.CLIConfigPath)
	if err != nil {
		return err
	}
	e.Sync.Apply(doc, name, p, all)
	if err := doc.Save(e.CLIConfigPath); err != nil {
		return err
	}
	fmt.Printf("Profile %q is now active in %s.\n", name, e.Settings.CLIConfigFilename)
	return nil
}

// maskCredential shows just enough of a credential to recognize it.
func maskCredential(credential string) string {
	if len(credential) <= 10 {
		return credential
	}
	return credential[:5] + "..." + credential[len(credential)-5:]
}

// stdinIsTerminal reports whether interactive prompts can run.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// chooseProfile resolves names down to one. A single candidate is taken
// as-is; several candidates get an interactive select, or an
// AmbiguousSelectionError when no terminal is attached — never a silent
// pick.
func chooseProfile(title string, names []string) (string, error) {
	if len(names) == 1 {
		return names[0], nil
	}
	if !stdinIsTerminal() {
		return "", &syncer.AmbiguousSelectionError{Candidates: names}
	}

	options := make([]huh.Option[string], 0, len(names))
	for _, name := range names {
		options = append(options, huh.NewOption(name, name))
	}
	var selected string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	).Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}

// confirm asks a yes/no question; force skips the prompt.
func confirm(prompt string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !stdinIsTerminal() {
		return false, fmt.Errorf("refusing to proceed without confirmation (re-run with --force)")
	}

	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(prompt).Value(&ok),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}
