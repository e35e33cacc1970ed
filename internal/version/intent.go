package version

import (
	"fmt"
	"strings"
)

// Intent is the kind of release the operator asked for.
type Intent int

const (
	// IntentUnset means no intent was supplied; the operator is asked.
	IntentUnset Intent = iota
	IntentMajor
	IntentMinor
	IntentPatch
	IntentPreRelease
)

// Intents lists the selectable intents in menu order.
var Intents = []Intent{IntentMajor, IntentMinor, IntentPatch, IntentPreRelease}

// String returns the lower-case name used on the command line.
func (i Intent) String() string {
	switch i {
	case IntentMajor:
		return "major"
	case IntentMinor:
		return "minor"
	case IntentPatch:
		return "patch"
	case IntentPreRelease:
		return "prerelease"
	default:
		return "unset"
	}
}

// Label returns the name shown in prompts.
func (i Intent) Label() string {
	switch i {
	case IntentMajor:
		return "Major"
	case IntentMinor:
		return "Minor"
	case IntentPatch:
		return "Patch"
	case IntentPreRelease:
		return "Pre-release"
	default:
		return "Unset"
	}
}

// IsValid reports whether i is one of the selectable intents.
func (i Intent) IsValid() bool {
	return i >= IntentMajor && i <= IntentPreRelease
}

// ParseIntent converts a name or a menu number (1-4) to an Intent.
// "beta" and "pre" are accepted for IntentPreRelease.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "1":
		return IntentMajor, nil
	case "minor", "2":
		return IntentMinor, nil
	case "patch", "3":
		return IntentPatch, nil
	case "prerelease", "pre-release", "pre", "beta", "4":
		return IntentPreRelease, nil
	default:
		return IntentUnset, fmt.Errorf("invalid release type: %q (valid: major, minor, patch, prerelease)", s)
	}
}

// MarshalText renders the command-line name, for JSON output.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
