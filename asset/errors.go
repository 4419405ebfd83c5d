package asset

import "errors"

// Sentinel errors named in spec.md §4.2's failure list. Wrap with
// dawnerr.New to attach a Kind and operation name at the call site.
var (
	ErrAssetNotFound        = errors.New("asset not found")
	ErrDependenciesMissing  = errors.New("dependencies missing")
	ErrNonUniqueID          = errors.New("non-unique asset id")
	ErrCircularDependency   = errors.New("circular dependency")
	ErrIO                   = errors.New("asset io error")
	ErrDecode               = errors.New("asset decode error")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
)
