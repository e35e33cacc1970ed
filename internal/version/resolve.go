package version

import (
	"github.com/mmr-tortoise/cutrelease/internal/model"
)

// Resolve computes the next version.
//
// The bump source is inFlight when set (a run continuing an existing release
// branch), otherwise lastReleased (the highest release tag). With neither
// there is nothing to bump from and the project has to be seeded with an
// initial tag out of band.
func Resolve(lastReleased, inFlight *Version, intent Intent) (Version, error) {
	var base Version
	switch {
	case inFlight != nil:
		base = *inFlight
	case lastReleased != nil:
		base = *lastReleased
	default:
		return Version{}, NoPriorVersionError()
	}
	return base.Bump(intent)
}

// NoPriorVersionError returns the error reported when there is no version
// to bump from.
func NoPriorVersionError() error {
	return model.WrapCLIError(model.ExitNoPriorVersion,
		"no release tag found; create an initial tag such as v0.1.0 first", model.ErrNoPriorVersion)
}
