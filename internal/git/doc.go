// Package git provides the version-control operations used by the
// cutrelease workflow.
//
// All Git operations are performed via os/exec calls to the git binary,
// rather than using a Git library like go-git. This approach:
//   - Avoids CGO dependencies (libgit2)
//   - Uses the exact same Git behavior the user sees in their terminal,
//     including credential helpers for fetch and push
//
// Git's text output is parsed here and nowhere else: callers receive branch
// names, booleans and tag lists.
package git
