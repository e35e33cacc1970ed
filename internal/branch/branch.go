package branch

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

const (
	// ReleasePrefix starts every release branch name.
	ReleasePrefix = "release/"

	// DefaultTrunk is the trunk branch name used when none is configured.
	DefaultTrunk = "master"

	// DefaultDevelopment is the development branch name used when none is configured.
	DefaultDevelopment = "dev"
)

// Kind is the classification of a branch name.
type Kind string

const (
	KindTrunk       Kind = "trunk"
	KindDevelopment Kind = "development"
	KindRelease     Kind = "release"
	KindOther       Kind = "other"
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	return string(k)
}

// Info is the result of classifying a branch name.
type Info struct {
	// Name is the branch name as reported by git.
	Name string

	// Kind is the classification of Name.
	Kind Kind

	// Version is the version embedded in a release branch name.
	// Only meaningful when Kind is KindRelease.
	Version version.Version
}

// IsTrunk reports whether the branch is the trunk.
func (i Info) IsTrunk() bool { return i.Kind == KindTrunk }

// IsDevelopment reports whether the branch is the development branch.
func (i Info) IsDevelopment() bool { return i.Kind == KindDevelopment }

// IsRelease reports whether the branch is a release branch.
func (i Info) IsRelease() bool { return i.Kind == KindRelease }

// Classifier knows the trunk and development branch names of a repository.
type Classifier struct {
	Trunk       string
	Development string
}

// DefaultClassifier returns a Classifier for the master/dev convention.
func DefaultClassifier() Classifier {
	return Classifier{Trunk: DefaultTrunk, Development: DefaultDevelopment}
}

// Classify reports what kind of branch name is. A name carrying the release
// prefix must be followed by a valid version; otherwise the name is
// rejected rather than treated as an ordinary branch.
func (c Classifier) Classify(name string) (Info, error) {
	info := Info{Name: name, Kind: KindOther}

	switch {
	case name == c.Trunk:
		info.Kind = KindTrunk
	case name == c.Development:
		info.Kind = KindDevelopment
	case strings.HasPrefix(name, ReleasePrefix):
		v, err := version.Parse(strings.TrimPrefix(name, ReleasePrefix))
		if err != nil {
			return Info{}, model.WrapCLIError(model.ExitInvalidVersion,
				fmt.Sprintf("branch %q does not name a release version", name),
				fmt.Errorf("%w: %w", model.ErrMalformedReleaseBranchName, err))
		}
		info.Kind = KindRelease
		info.Version = v
	}

	return info, nil
}

// ReleaseName returns the release branch name for v.
func ReleaseName(v version.Version) string {
	return ReleasePrefix + v.String()
}
