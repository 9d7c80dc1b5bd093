// Package settings holds the tool's own configuration: the file names and
// document keys that parametrize every command. Settings are loaded once
// per invocation and passed by value; nothing mutates them afterwards.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const filename = "config.toml"

// Settings parametrizes the files and keys the tool touches.
type Settings struct {
	ProfilesFilename     string `toml:"profiles_filename"`
	CLIConfigDirFromHome string `toml:"cli_config_dir_from_home"`
	CLIConfigFilename    string `toml:"cli_config_filename"`
	CLITokenKey          string `toml:"cli_token_key"`
}

// Default returns the settings used on first run.
func Default() Settings {
	return Settings{
		ProfilesFilename:     "profiles.toml",
		CLIConfigDirFromHome: ".config/spacetime",
		CLIConfigFilename:    "cli.yaml",
		CLITokenKey:          "spacetimedb_token",
	}
}

// File returns the settings file path inside the app config directory.
func File(appDir string) string {
	return filepath.Join(appDir, filename)
}

// Load reads config.toml from appDir, creating it with defaults when it
// does not exist yet. Fields left blank in the file fall back to their
// defaults so a hand-trimmed config stays usable.
func Load(appDir string) (Settings, error) {
	path := File(appDir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := Default()
		if err := Save(appDir, s); err != nil {
			return Settings{}, fmt.Errorf("writing default settings: %w", err)
		}
		fmt.Printf("Created %s with default settings.\n", path)
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing settings at %s: %w", path, err)
	}
	applyDefaults(&s)
	return s, nil
}

// Save writes config.toml in one pass.
func Save(appDir string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("serializing settings: %w", err)
	}
	if err := os.WriteFile(File(appDir), data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

func applyDefaults(s *Settings) {
	def := Default()
	if s.ProfilesFilename == "" {
		s.ProfilesFilename = def.ProfilesFilename
	}
	if s.CLIConfigDirFromHome == "" {
		s.CLIConfigDirFromHome = def.CLIConfigDirFromHome
	}
	if s.CLIConfigFilename == "" {
		s.CLIConfigFilename = def.CLIConfigFilename
	}
	if s.CLITokenKey == "" {
		s.CLITokenKey = def.CLITokenKey
	}
}
