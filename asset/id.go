// Package asset implements the engine's asset hub: a registry tracking
// per-asset lifecycle state, a dependency-ordered task scheduler that
// plans load/free sequences across worker factories, and a type-safe
// reference-counted handle that is safe to hand to other threads.
//
// Package asset is provided as part of the Dawn/Yage2 engine core: a
// depot of cached resources plus explicit lazy-load-on-miss fetch paths,
// generalized here into a full dependency DAG scheduler with async
// worker factories.
package asset

import (
	"regexp"
	"strings"
)

// ID is an interned, case-normalized asset identifier. It is unique
// within a package and stable across loads.
type ID string

var idInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize derives an ID from a filename: lowercase, non-alphanumeric
// runs replaced with a single underscore, extension stripped, leading
// and trailing underscores trimmed. Normalize is idempotent.
func Normalize(name string) ID {
	lower := strings.ToLower(name)
	if i := strings.LastIndexByte(lower, '.'); i > 0 {
		lower = lower[:i]
	}
	lower = idInvalid.ReplaceAllString(lower, "_")
	lower = strings.Trim(lower, "_")
	return ID(lower)
}
