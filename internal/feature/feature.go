// Package feature provides a minimal alpha/stable flag registry, following
// the pattern the teacher repository uses to gate behavior changes without
// forcing every caller onto a new default immediately.
package feature

// state describes the rollout phase of a flag. Alpha flags default to
// disabled; Stable flags are always enabled and exist only so callers can
// probe for the behavior without a version check.
type state string

const (
	Alpha  state = "alpha"
	Stable state = "stable"
)

// Name identifies a flag.
type Name string

// Flags used by this module:
const (
	// HiWordMulOverflow switches Pol.Mul's overflow detection from Pike's
	// trick (the default) to a direct 128-bit high-word check. Disabled by
	// default: Pike's trick needs no wide multiplier and is the behavior
	// the golden test vectors were produced with.
	HiWordMulOverflow Name = "hiword-mul-overflow"
)

type flagSet struct {
	enabled map[Name]bool
}

func newFlagSet() *flagSet {
	return &flagSet{
		enabled: map[Name]bool{
			HiWordMulOverflow: false, // Alpha: off by default
		},
	}
}

// Enabled reports whether name is currently enabled. Unknown flags are
// treated as disabled.
func (f *flagSet) Enabled(name Name) bool {
	return f.enabled[name]
}

// Set overrides a flag's state. Intended for tests; production callers
// should treat the defaults above as fixed.
func (f *flagSet) Set(name Name, value bool) {
	f.enabled[name] = value
}

// Flag is the package-wide flag set consulted by this module's algorithms.
var Flag = newFlagSet()
