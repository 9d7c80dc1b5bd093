// Package syncer makes the external CLI's config document reflect the
// profile store. The flow is strictly one-directional: profiles are
// read, the document is mutated, never the reverse.
package syncer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stdbtools/spacetime-token/internal/address"
	"github.com/stdbtools/spacetime-token/internal/clidoc"
	"github.com/stdbtools/spacetime-token/internal/store"
)

// DefaultHostKey is the document key recording the active environment,
// as the raw address string the profile stores.
const DefaultHostKey = "default_host"

// DefaultServerKey is the document key naming the active registry row.
// The external CLI resolves the current server through it, so it must
// follow every activation.
const DefaultServerKey = "default_server"

// Engine applies profiles to the CLI config document. TokenKey is the
// configurable document key the credential is written under.
type Engine struct {
	TokenKey string
}

// Activate records the profile as the active session: its credential
// under the token key, its raw address under default_host (verbatim, for
// display and compatibility), the profile's name under default_server so
// the CLI selects its registry row, and one registry row under the
// profile's name with the normalized target.
func (e Engine) Activate(doc *clidoc.Document, name string, p store.Profile) {
	doc.SetScalar(e.TokenKey, p.Credential)
	doc.SetScalar(DefaultHostKey, p.Address)
	doc.SetScalar(DefaultServerKey, name)
	protocol, host := address.Target(p.Address)
	doc.UpsertServer(name, host, protocol)
}

// Reconcile upserts one normalized registry row per stored profile.
// The sweep is additive: rows for nicknames the store no longer knows
// are left in place, since the document may be hand-edited or contain
// entries this tool does not own. Renaming a profile therefore leaves an
// orphan row behind plus a new row under the new name.
func (e Engine) Reconcile(doc *clidoc.Document, profiles store.Profiles) {
	for _, name := range profiles.Names() {
		protocol, host := address.Target(profiles[name].Address)
		doc.UpsertServer(name, host, protocol)
	}
}

// Apply activates the named profile and then sweeps the full store, in
// that order, so the activated profile's row is never shadowed by the
// sweep.
func (e Engine) Apply(doc *clidoc.Document, name string, p store.Profile, all store.Profiles) {
	e.Activate(doc, name, p)
	e.Reconcile(doc, all)
}

// FilterByAddress returns the sorted names of profiles whose raw address
// equals addr. Addresses are compared verbatim: "local" and its expanded
// URL form are distinct environments.
func FilterByAddress(profiles store.Profiles, addr string) []string {
	var names []string
	for name, p := range profiles {
		if p.Address == addr {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// AddressMismatchError reports an explicitly named profile whose stored
// address differs from the requested environment.
type AddressMismatchError struct {
	Profile   string
	Stored    string
	Requested string
}

func (e *AddressMismatchError) Error() string {
	return fmt.Sprintf("profile %q uses address %q which does not match the requested environment %q",
		e.Profile, e.Stored, e.Requested)
}

// AmbiguousSelectionError reports that several profiles matched and no
// interactive prompt was available to pick one.
type AmbiguousSelectionError struct {
	Candidates []string
}

func (e *AmbiguousSelectionError) Error() string {
	return fmt.Sprintf("multiple profiles match (%s); pass a profile name to choose one",
		strings.Join(e.Candidates, ", "))
}
