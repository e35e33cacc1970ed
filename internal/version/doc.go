// Package version implements the release version value type, the release
// intent enum and the next-version resolver.
//
// Versions use the canonical form MAJOR.MINOR.PATCH[bN], where bN is a beta
// (pre-release) ordinal. Ordering is delegated to
// github.com/Masterminds/semver/v3 by mapping the beta ordinal onto the
// semver pre-release identifier "b.N", so a final release outranks every
// beta of the same MAJOR.MINOR.PATCH and betas compare numerically.
//
// Everything in this package is pure: no I/O, no git, no prompts.
package version
