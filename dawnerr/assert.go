//go:build debug

package dawnerr

import "fmt"

// Assert panics if cond is false. It compiles to a no-op unless the
// binary is built with `-tags debug`, mirroring the source engine's
// debug-only scheduling assertions (double-completion of a task, asset
// handle type mismatch on cast).
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
