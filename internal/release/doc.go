// Package release implements the release state machine.
//
// An Orchestrator classifies the current branch, resolves the next version,
// and then drives the repository through a fixed sequence:
//
//	preflight → resolve → confirm → release branch → record version
//	  → merge to trunk (final releases only) → tag → confirm push
//	  → publish → restore original branch
//
// The Orchestrator only sees its collaborators through the Repository,
// ManifestStore and Prompter interfaces, so the whole sequence can be
// exercised with canned answers and a recording fake repository.
package release
