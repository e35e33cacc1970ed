package version

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/mmr-tortoise/cutrelease/internal/model"
)

// TagPrefix is prepended to a version to form its release tag name.
const TagPrefix = "v"

// canonicalRegex matches MAJOR.MINOR.PATCH with an optional bN suffix.
// Leading zeros are rejected so that parsing and rendering round-trip.
var canonicalRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)\.(0|[1-9][0-9]*)(?:b(0|[1-9][0-9]*))?$`)

// Version is an immutable release version. The zero value is 0.0.0, which
// manifests use as the "unset" sentinel.
type Version struct {
	major, minor, patch uint64

	// beta is only meaningful when hasBeta is true.
	beta    uint64
	hasBeta bool
}

// New returns the final release major.minor.patch.
func New(major, minor, patch uint64) Version {
	return Version{major: major, minor: minor, patch: patch}
}

// NewPreRelease returns major.minor.patch with beta ordinal n.
func NewPreRelease(major, minor, patch, n uint64) Version {
	return Version{major: major, minor: minor, patch: patch, beta: n, hasBeta: true}
}

// Parse converts a canonical version string into a Version.
func Parse(s string) (Version, error) {
	m := canonicalRegex.FindStringSubmatch(s)
	if m == nil {
		return Version{}, invalid(s, nil)
	}

	// StrictNewVersion does the numeric conversion and catches components
	// that overflow uint64.
	sv, err := semver.StrictNewVersion(m[1] + "." + m[2] + "." + m[3])
	if err != nil {
		return Version{}, invalid(s, err)
	}

	v := New(sv.Major(), sv.Minor(), sv.Patch())
	if m[4] != "" {
		n, err := strconv.ParseUint(m[4], 10, 64)
		if err != nil {
			return Version{}, invalid(s, err)
		}
		v.beta, v.hasBeta = n, true
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseTag parses a release tag such as "v1.2.0b1".
func ParseTag(tag string) (Version, error) {
	if !strings.HasPrefix(tag, TagPrefix) {
		return Version{}, invalid(tag, fmt.Errorf("tag does not start with %q", TagPrefix))
	}
	return Parse(strings.TrimPrefix(tag, TagPrefix))
}

func invalid(s string, cause error) *model.CLIError {
	err := model.ErrInvalidVersionFormat
	if cause != nil {
		err = fmt.Errorf("%w: %v", model.ErrInvalidVersionFormat, cause)
	}
	return model.WrapCLIError(model.ExitInvalidVersion,
		fmt.Sprintf("invalid version %q (expected MAJOR.MINOR.PATCH[bN])", s), err)
}

// Major returns the major component.
func (v Version) Major() uint64 { return v.major }

// Minor returns the minor component.
func (v Version) Minor() uint64 { return v.minor }

// Patch returns the patch component.
func (v Version) Patch() uint64 { return v.patch }

// PreRelease returns the beta ordinal and whether the version has one.
func (v Version) PreRelease() (uint64, bool) { return v.beta, v.hasBeta }

// IsPreRelease reports whether v carries a beta ordinal.
func (v Version) IsPreRelease() bool { return v.hasBeta }

// IsUnset reports whether v is the 0.0.0 sentinel.
func (v Version) IsUnset() bool { return v == Version{} }

// String renders the canonical form, without the tag prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.hasBeta {
		s += "b" + strconv.FormatUint(v.beta, 10)
	}
	return s
}

// Tag returns the release tag name for v, e.g. "v1.2.0".
func (v Version) Tag() string {
	return TagPrefix + v.String()
}

// MarshalText renders the canonical form so versions serialize as plain
// strings in JSON output.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// semver maps v onto a semver version for ordering.
func (v Version) semver() *semver.Version {
	pre := ""
	if v.hasBeta {
		pre = "b." + strconv.FormatUint(v.beta, 10)
	}
	return semver.New(v.major, v.minor, v.patch, pre, "")
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after o.
func (v Version) Compare(o Version) int {
	return v.semver().Compare(o.semver())
}

// Compare is the function form of Version.Compare, for slices.SortFunc.
func Compare(a, b Version) int {
	return a.Compare(b)
}

// Max returns the greatest version and false when versions is empty.
func Max(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	return slices.MaxFunc(versions, Compare), true
}

// Bump derives the next version for the given intent.
//
//	Major      → (major+1).0.0
//	Minor      → major.(minor+1).0
//	Patch      → major.minor.(patch+1)
//	PreRelease → major.minor.patch b(n+1), starting at b1
//
// Major, Minor and Patch always clear the beta ordinal.
func (v Version) Bump(intent Intent) (Version, error) {
	switch intent {
	case IntentMajor:
		if v.major == math.MaxUint64 {
			return Version{}, overflow(v, "major")
		}
		return New(v.major+1, 0, 0), nil
	case IntentMinor:
		if v.minor == math.MaxUint64 {
			return Version{}, overflow(v, "minor")
		}
		return New(v.major, v.minor+1, 0), nil
	case IntentPatch:
		if v.patch == math.MaxUint64 {
			return Version{}, overflow(v, "patch")
		}
		return New(v.major, v.minor, v.patch+1), nil
	case IntentPreRelease:
		n := uint64(1)
		if v.hasBeta {
			if v.beta == math.MaxUint64 {
				return Version{}, overflow(v, "pre-release")
			}
			n = v.beta + 1
		}
		return NewPreRelease(v.major, v.minor, v.patch, n), nil
	default:
		return Version{}, fmt.Errorf("invalid release type: %d", intent)
	}
}

// overflow reports a component that cannot be incremented.
func overflow(v Version, component string) *model.CLIError {
	return model.WrapCLIError(model.ExitInvalidVersion,
		fmt.Sprintf("cannot bump %s: %s component is at its maximum", v, component),
		model.ErrInvalidVersionFormat)
}
