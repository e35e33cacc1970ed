package release

import (
	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// Session is the in-memory state of one release run. It is discarded when
// the process exits; only the manifest and the repository keep anything.
type Session struct {
	// OriginalBranch is the branch checked out when the run started. It is
	// checked out again at the end of the run.
	OriginalBranch string `json:"originalBranch"`

	// Intent is the requested release type.
	Intent version.Intent `json:"type"`

	// Previous is the version the bump started from.
	Previous version.Version `json:"previous"`

	// Next is the version being released.
	Next version.Version `json:"next"`

	// ReleaseBranch is "release/<Next>".
	ReleaseBranch string `json:"releaseBranch"`

	// Tag is "v<Next>".
	Tag string `json:"tag"`

	// PreRelease suppresses the trunk merge and the trunk push.
	PreRelease bool `json:"preRelease"`

	// TrunkAdvanced is set once the release branch was merged into trunk.
	TrunkAdvanced bool `json:"trunkAdvanced"`

	// Pushed lists the refs published to the remote.
	Pushed []string `json:"pushed,omitempty"`

	// Outcome is the terminal state, or OutcomePending while running.
	Outcome model.Outcome `json:"outcome"`
}

func newSession(intent version.Intent) *Session {
	return &Session{Intent: intent, Outcome: model.OutcomePending}
}

// fail marks the session failed and returns err unchanged.
func (s *Session) fail(err error) (*Session, error) {
	s.Outcome = model.OutcomeFailed
	return s, err
}

// abort marks the session aborted by the operator.
func (s *Session) abort() (*Session, error) {
	s.Outcome = model.OutcomeAborted
	return s, model.WrapCLIError(model.ExitUserCancelled, "operation cancelled by user", model.ErrAbortedByOperator)
}
