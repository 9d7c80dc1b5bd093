// Package store persists the mapping of profile name to credential and
// server address.
//
// Two on-disk schemas exist. The current one maps each profile name to a
// table with credential and address fields. The legacy one mapped names
// straight to credential strings; it is only ever read, and a successful
// read upgrades the file in place with every address defaulted to
// "local". Schema detection is structural: a file that decodes as
// neither shape is corrupt.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// LocalAddress is the address assigned to profiles migrated from the
// legacy schema, which predates per-profile addresses.
const LocalAddress = "local"

// Profile is one named login: an opaque bearer credential plus the raw,
// unnormalized server address it belongs to. The credential is never
// empty once stored.
type Profile struct {
	Credential string `toml:"credential"`
	Address    string `toml:"address"`
}

// Profiles maps profile name to profile. Names are case-sensitive and
// the store itself enforces no collision policy; callers decide whether
// an insert may overwrite.
type Profiles map[string]Profile

// Names returns the profile names sorted, for deterministic output.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CorruptError reports a profiles file that parses as neither the
// current nor the legacy schema. The file on disk is left untouched.
type CorruptError struct {
	Path    string
	Current error
	Legacy  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("profiles file %s is corrupted: %v (legacy parse: %v)", e.Path, e.Current, e.Legacy)
}

// Load reads the profile store at path. A missing file is created empty,
// a blank file is an empty store, and a legacy-schema file is migrated
// and persisted back before being returned.
func Load(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, fmt.Errorf("creating empty profiles file: %w", err)
		}
		return Profiles{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Profiles{}, nil
	}

	var profiles Profiles
	currentErr := toml.Unmarshal(data, &profiles)
	if currentErr == nil {
		return profiles, nil
	}

	var legacy map[string]string
	if legacyErr := toml.Unmarshal(data, &legacy); legacyErr != nil {
		return nil, &CorruptError{Path: path, Current: currentErr, Legacy: legacyErr}
	}

	profiles = make(Profiles, len(legacy))
	for name, credential := range legacy {
		profiles[name] = Profile{Credential: credential, Address: LocalAddress}
	}
	// One-time self-healing write so the migration never runs twice.
	if err := Save(path, profiles); err != nil {
		return nil, fmt.Errorf("saving migrated profiles: %w", err)
	}
	fmt.Printf("Migrated %s from the legacy schema.\n", path)
	return profiles, nil
}

// Save serializes the whole mapping first, so a failed serialize aborts
// before the file is touched, then overwrites it in one write.
func Save(path string, profiles Profiles) error {
	data, err := toml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("serializing profiles: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing profiles file: %w", err)
	}
	return nil
}
