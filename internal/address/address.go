// Package address normalizes user-supplied server addresses.
//
// Addresses arrive in three shapes: the reserved alias "local", a bare
// host (optionally with port), or a full URL that may carry a trailing
// "/spacetime" path segment. Normalization is pure and total: malformed
// input degrades to an empty host rather than an error.
package address

import "strings"

const (
	localAlias = "local"
	localHost  = "127.0.0.1:3000"
)

// Target turns a raw address into the (protocol, host) pair recorded in
// the CLI's server registry. The "local" alias maps to the local dev
// server unconditionally and is never parsed as a URL.
//
// Target is idempotent: feeding "{protocol}://{host}" of its own output
// back in reproduces the same pair.
func Target(addr string) (protocol, host string) {
	if addr == localAlias {
		return "http", localHost
	}
	rest := stripDecorations(addr)
	switch {
	case strings.HasPrefix(rest, "https://"):
		return "https", hostOf(strings.TrimPrefix(rest, "https://"))
	case strings.HasPrefix(rest, "http://"):
		return "http", hostOf(strings.TrimPrefix(rest, "http://"))
	}
	return "http", hostOf(rest)
}

// IdentityBase strips the same trailing decorations as Target but keeps
// the address whole, scheme included. Callers append the identity
// endpoint path to it.
func IdentityBase(addr string) string {
	return stripDecorations(addr)
}

// stripDecorations removes one trailing slash, one trailing "/spacetime"
// path segment, and any slash that stripping the segment exposed.
func stripDecorations(addr string) string {
	s := strings.TrimSuffix(addr, "/")
	s = strings.TrimSuffix(s, "/spacetime")
	return strings.TrimSuffix(s, "/")
}

// hostOf returns everything up to the first path separator.
func hostOf(s string) string {
	host, _, _ := strings.Cut(s, "/")
	return host
}
