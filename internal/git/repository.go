// Package git provides the version-control operations used by the
// cutrelease workflow.
//
// Design decisions:
//   - We shell out to `git` rather than using a Go Git library, so merges
//     with strategy options and pushes through the user's credential setup
//     behave exactly like the terminal.
//   - Every command runs with `git -C <dir>` so the process working
//     directory is never changed.
//   - All errors from Git commands are wrapped in model.CLIError with
//     ExitGitError to enable proper CLI exit code handling.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mmr-tortoise/cutrelease/internal/model"
)

// DefaultRemote is the remote used when none is configured.
const DefaultRemote = "origin"

// Repository runs git commands against one working tree.
type Repository struct {
	// Dir is the working tree directory passed to `git -C`.
	Dir string

	// Remote is the remote used by FetchTags, Pull and Push.
	Remote string
}

// NewRepository creates a Repository for dir. An empty remote selects
// DefaultRemote.
func NewRepository(dir, remote string) *Repository {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Repository{Dir: dir, Remote: remote}
}

// RepoRoot returns the absolute path to the top-level directory of the
// Git repository containing path.
//
// This uses `git rev-parse --show-toplevel`, which returns the root of
// whichever working tree contains the specified path.
func RepoRoot(ctx context.Context, path string) (string, error) {
	output, err := runGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// CurrentBranch returns the name of the checked-out branch.
//
// `git branch --show-current` prints nothing on a detached HEAD, which is
// reported as an error because a release cannot start from there.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	output, err := runGit(ctx, r.Dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(output)
	if name == "" {
		return "", model.NewCLIError(model.ExitGitError, "HEAD is detached; check out a branch first")
	}
	return name, nil
}

// IsClean reports whether the working tree has no staged, unstaged or
// untracked changes.
func (r *Repository) IsClean(ctx context.Context) (bool, error) {
	output, err := runGit(ctx, r.Dir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) == "", nil
}

// BranchExists checks whether a local branch with the given name exists.
//
// `git rev-parse --verify --quiet refs/heads/<branch>` exits with code 0 if
// the ref exists and non-zero otherwise. Using the full ref keeps a tag of
// the same name from matching.
func (r *Repository) BranchExists(ctx context.Context, branch string) bool {
	_, err := runGit(ctx, r.Dir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// Checkout switches to an existing branch.
func (r *Repository) Checkout(ctx context.Context, branch string) error {
	_, err := runGit(ctx, r.Dir, "checkout", branch)
	return err
}

// CreateBranch creates branch at HEAD and switches to it.
func (r *Repository) CreateBranch(ctx context.Context, branch string) error {
	_, err := runGit(ctx, r.Dir, "checkout", "-b", branch)
	return err
}

// DeleteBranch force-deletes a local branch.
func (r *Repository) DeleteBranch(ctx context.Context, branch string) error {
	_, err := runGit(ctx, r.Dir, "branch", "-D", branch)
	return err
}

// FetchTags refreshes local tags from the remote.
func (r *Repository) FetchTags(ctx context.Context) error {
	_, err := runGit(ctx, r.Dir, "fetch", "--tags", r.Remote)
	return err
}

// Pull merges the remote's copy of branch into the current branch.
func (r *Repository) Pull(ctx context.Context, branch string) error {
	_, err := runGit(ctx, r.Dir, "pull", "--no-rebase", "--no-edit", r.Remote, branch)
	return err
}

// AddAll stages every change in the working tree.
func (r *Repository) AddAll(ctx context.Context) error {
	_, err := runGit(ctx, r.Dir, "add", "--all")
	return err
}

// Commit records the staged changes.
func (r *Repository) Commit(ctx context.Context, message string) error {
	_, err := runGit(ctx, r.Dir, "commit", "-m", message)
	return err
}

// MergeNoFastForward merges branch into the current branch, always creating
// a merge commit. Conflicting hunks are resolved in favour of branch
// (`-X theirs`).
func (r *Repository) MergeNoFastForward(ctx context.Context, branch, message string) error {
	_, err := runGit(ctx, r.Dir, "merge", "--no-ff", "--no-edit", "-X", "theirs", "-m", message, branch)
	return err
}

// CreateTag tags HEAD. An empty message creates a lightweight tag; otherwise
// the tag is annotated with message.
func (r *Repository) CreateTag(ctx context.Context, name, message string) error {
	args := []string{"tag", name}
	if message != "" {
		args = []string{"tag", "-a", name, "-m", message}
	}
	_, err := runGit(ctx, r.Dir, args...)
	return err
}

// Push pushes a branch or tag to the remote.
func (r *Repository) Push(ctx context.Context, ref string) error {
	_, err := runGit(ctx, r.Dir, "push", r.Remote, ref)
	return err
}

// ListTags returns the tags matching a glob pattern such as "v*".
func (r *Repository) ListTags(ctx context.Context, pattern string) ([]string, error) {
	output, err := runGit(ctx, r.Dir, "tag", "--list", pattern)
	if err != nil {
		return nil, err
	}
	return splitLines(output), nil
}

// runGit executes a git command with the given arguments in the specified directory.
//
// It captures both stdout and stderr. On success (exit code 0), it returns
// the stdout output. On failure, it returns a model.CLIError with ExitGitError
// code, including the stderr output in the error message for debugging.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)

	// #nosec G204 -- args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, "git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("git %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(model.ExitGitError, message, err)
	}

	return stdout.String(), nil
}

// splitLines returns the non-empty trimmed lines of output.
func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
