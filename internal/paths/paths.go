// Package paths resolves the files this tool reads and writes.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/stdbtools/spacetime-token/internal/settings"
)

const appDirName = "spacetime-token"

// AppDir returns the tool's own config directory, creating it on first use.
func AppDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating app config directory: %w", err)
	}
	return dir, nil
}

// ProfilesFile returns the profile store path for the given settings.
func ProfilesFile(appDir string, s settings.Settings) string {
	return filepath.Join(appDir, s.ProfilesFilename)
}

// CLIConfigFile returns the external CLI's config document path, rooted
// at the user's home directory.
func CLIConfigFile(s settings.Settings) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, s.CLIConfigDirFromHome, s.CLIConfigFilename), nil
}
