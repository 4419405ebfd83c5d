//go:build !debug

package dawnerr

// Assert is a no-op in release builds; scheduling invariants are only
// checked when built with `-tags debug`.
func Assert(cond bool, format string, args ...any) {}
