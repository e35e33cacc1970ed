package release

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mmr-tortoise/cutrelease/internal/branch"
	"github.com/mmr-tortoise/cutrelease/internal/logs"
	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// tagPattern selects release tags.
const tagPattern = version.TagPrefix + "*"

// Repository is the version-control collaborator. *git.Repository
// implements it.
type Repository interface {
	CurrentBranch(ctx context.Context) (string, error)
	IsClean(ctx context.Context) (bool, error)
	BranchExists(ctx context.Context, name string) bool
	Checkout(ctx context.Context, name string) error
	CreateBranch(ctx context.Context, name string) error
	DeleteBranch(ctx context.Context, name string) error
	FetchTags(ctx context.Context) error
	Pull(ctx context.Context, branch string) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	MergeNoFastForward(ctx context.Context, branch, message string) error
	CreateTag(ctx context.Context, name, message string) error
	Push(ctx context.Context, ref string) error
	ListTags(ctx context.Context, pattern string) ([]string, error)
}

// ManifestStore is the manifest collaborator. *manifest.Store implements it.
type ManifestStore interface {
	ComponentDir() (string, error)
	ReadVersion() (version.Version, error)
	WriteVersion(v version.Version) error
}

// Prompter asks the operator. *prompt.Prompter implements it. Both
// methods return ctx.Err() when ctx is cancelled while they wait.
type Prompter interface {
	SelectIntent(ctx context.Context) (version.Intent, error)
	Confirm(ctx context.Context, message string) (bool, error)
}

// Orchestrator runs releases against one repository.
type Orchestrator struct {
	repo     Repository
	manifest ManifestStore
	prompter Prompter
	branches branch.Classifier

	annotateTags bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithAnnotatedTags makes release tags annotated ("Release v<version>").
func WithAnnotatedTags(annotate bool) Option {
	return func(o *Orchestrator) { o.annotateTags = annotate }
}

// New creates an Orchestrator.
func New(repo Repository, manifest ManifestStore, prompter Prompter, branches branch.Classifier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		repo:     repo,
		manifest: manifest,
		prompter: prompter,
		branches: branches,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Plan resolves what a release would do without mutating anything. The
// working tree may be dirty. Release tags are still refreshed from the
// remote so the plan matches what Run would compute.
func (o *Orchestrator) Plan(ctx context.Context, intent version.Intent) (*Session, error) {
	return o.plan(ctx, intent, false)
}

// Run performs a complete release. The returned Session is never nil and
// its Outcome tells how the run ended; the error is nil only for
// OutcomeCompleted.
//
// Once the first confirmation is given, the original branch is checked out
// again before Run returns, whatever happens afterwards. Nothing else is
// rolled back: commits, branches and tags created before a failure or a
// declined push stay in the local repository.
func (o *Orchestrator) Run(ctx context.Context, intent version.Intent) (s *Session, err error) {
	s, err = o.plan(ctx, intent, true)
	if err != nil {
		return s, err
	}

	ok, err := o.prompter.Confirm(ctx, fmt.Sprintf("Previous version was %s\nConfirm next %s release version %s?",
		s.Previous, s.Intent.Label(), s.Next))
	if err != nil {
		return s.fail(inputError("failed to read operator input", err))
	}
	if !ok {
		return s.abort()
	}

	defer func() {
		// Restore even when ctx was cancelled by an interrupt.
		if rerr := o.repo.Checkout(context.WithoutCancel(ctx), s.OriginalBranch); rerr != nil {
			logs.Error("Failed to restore branch %s: %v", s.OriginalBranch, rerr)
			if err == nil {
				s, err = s.fail(rerr)
			}
		}
	}()

	if err := o.materializeBranch(ctx, s); err != nil {
		return s.fail(err)
	}
	if err := o.recordVersion(ctx, s); err != nil {
		return s.fail(err)
	}
	if !s.PreRelease {
		if err := o.mergeToTrunk(ctx, s); err != nil {
			return s.fail(err)
		}
	}
	if err := o.createTag(ctx, s); err != nil {
		return s.fail(err)
	}

	refs := o.publishRefs(s)
	ok, err = o.prompter.Confirm(ctx, fmt.Sprintf("Push %s to the remote?", strings.Join(refs, ", ")))
	if err != nil {
		return s.fail(inputError("failed to read operator input", err))
	}
	if !ok {
		logs.Warn("Nothing pushed; %s and tag %s exist only locally", s.ReleaseBranch, s.Tag)
		return s.abort()
	}

	for _, ref := range refs {
		logs.Info("Pushing %s", ref)
		if err := o.repo.Push(ctx, ref); err != nil {
			return s.fail(err)
		}
		s.Pushed = append(s.Pushed, ref)
	}

	s.Outcome = model.OutcomeCompleted
	logs.Info("Released %s", s.Tag)
	return s, nil
}

// inputError wraps a prompt failure. An interrupt while waiting for the
// operator maps to ExitUserCancelled.
func inputError(message string, err error) error {
	if errors.Is(err, context.Canceled) {
		return model.WrapCLIError(model.ExitUserCancelled, "interrupted", err)
	}
	return model.WrapCLIError(model.ExitGeneralError, message, err)
}

// plan runs the preflight checks and resolves the next version.
func (o *Orchestrator) plan(ctx context.Context, intent version.Intent, requireClean bool) (*Session, error) {
	s := newSession(intent)

	current, err := o.repo.CurrentBranch(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.OriginalBranch = current
	logs.Info("Current branch: %s", current)

	info, err := o.branches.Classify(current)
	if err != nil {
		return s.fail(err)
	}
	if !info.IsDevelopment() && !info.IsRelease() {
		return s.fail(model.WrapCLIError(model.ExitUnsupportedBranch,
			fmt.Sprintf("releases start from %q or a %s<version> branch, not %q",
				o.branches.Development, branch.ReleasePrefix, current),
			model.ErrUnsupportedBranch))
	}

	if requireClean {
		clean, err := o.repo.IsClean(ctx)
		if err != nil {
			return s.fail(err)
		}
		if !clean {
			return s.fail(model.WrapCLIError(model.ExitDirtyWorkarea,
				"working tree has uncommitted changes", model.ErrDirtyWorkarea))
		}
	}

	dir, err := o.manifest.ComponentDir()
	if err != nil {
		return s.fail(err)
	}
	logs.Debug("Component directory: %s", dir)

	if err := o.repo.FetchTags(ctx); err != nil {
		return s.fail(err)
	}

	lastReleased, inFlight, err := o.baseline(ctx, info)
	if err != nil {
		return s.fail(err)
	}

	if s.Intent == version.IntentUnset {
		if s.Intent, err = o.prompter.SelectIntent(ctx); err != nil {
			return s.fail(inputError("failed to read release type", err))
		}
	}
	if !s.Intent.IsValid() {
		return s.fail(model.NewCLIError(model.ExitGeneralError, fmt.Sprintf("invalid release type %q", s.Intent)))
	}

	next, err := version.Resolve(lastReleased, inFlight, s.Intent)
	if err != nil {
		return s.fail(err)
	}

	if inFlight != nil {
		s.Previous = *inFlight
	} else {
		s.Previous = *lastReleased
	}
	s.Next = next
	s.ReleaseBranch = branch.ReleaseName(next)
	s.Tag = next.Tag()
	s.PreRelease = s.Intent == version.IntentPreRelease

	logs.Debug("Next version: %s", s.Next)
	logs.Debug("Release branch: %s", s.ReleaseBranch)
	logs.Debug("Tag name: %s", s.Tag)
	return s, nil
}

// baseline returns the version to bump from. On the development branch it
// is the highest release tag; on a release branch it is the manifest
// version, or the branch's own version while the manifest holds the 0.0.0
// placeholder.
func (o *Orchestrator) baseline(ctx context.Context, info branch.Info) (lastReleased, inFlight *version.Version, err error) {
	if info.IsRelease() {
		v, err := o.manifest.ReadVersion()
		if err != nil {
			return nil, nil, err
		}
		if v.IsUnset() {
			logs.Debug("Manifest version is unset, using %s from branch %s", info.Version, info.Name)
			v = info.Version
		}
		return nil, &v, nil
	}

	tags, err := o.repo.ListTags(ctx, tagPattern)
	if err != nil {
		return nil, nil, err
	}

	versions := make([]version.Version, 0, len(tags))
	for _, tag := range tags {
		v, err := version.ParseTag(tag)
		if err != nil {
			logs.Debug("Ignoring tag %s: %v", tag, err)
			continue
		}
		versions = append(versions, v)
	}
	logs.Debug("Versions: %v", versions)

	last, ok := version.Max(versions)
	if !ok {
		return nil, nil, version.NoPriorVersionError()
	}
	return &last, nil, nil
}

// materializeBranch switches to the release branch, creating it from the
// current position when it does not exist yet.
func (o *Orchestrator) materializeBranch(ctx context.Context, s *Session) error {
	if s.OriginalBranch == s.ReleaseBranch {
		return nil
	}
	if o.repo.BranchExists(ctx, s.ReleaseBranch) {
		logs.Info("Checking out existing branch %s", s.ReleaseBranch)
		return o.repo.Checkout(ctx, s.ReleaseBranch)
	}
	logs.Info("Creating branch %s", s.ReleaseBranch)
	return o.repo.CreateBranch(ctx, s.ReleaseBranch)
}

// recordVersion writes the manifest and commits it on the release branch.
func (o *Orchestrator) recordVersion(ctx context.Context, s *Session) error {
	if err := o.manifest.WriteVersion(s.Next); err != nil {
		return err
	}
	if err := o.repo.AddAll(ctx); err != nil {
		return err
	}
	return o.repo.Commit(ctx, fmt.Sprintf("Update version to %s", s.Next))
}

// mergeToTrunk merges the release branch into an up-to-date trunk.
func (o *Orchestrator) mergeToTrunk(ctx context.Context, s *Session) error {
	trunk := o.branches.Trunk
	if err := o.repo.Checkout(ctx, trunk); err != nil {
		return err
	}
	if err := o.repo.Pull(ctx, trunk); err != nil {
		return err
	}
	logs.Info("Merging %s into %s", s.ReleaseBranch, trunk)
	if err := o.repo.MergeNoFastForward(ctx, s.ReleaseBranch, "Release "+s.Tag); err != nil {
		return err
	}
	s.TrunkAdvanced = true
	return nil
}

func (o *Orchestrator) createTag(ctx context.Context, s *Session) error {
	message := ""
	if o.annotateTags {
		message = "Release " + s.Tag
	}
	logs.Info("Tagging %s", s.Tag)
	return o.repo.CreateTag(ctx, s.Tag, message)
}

// publishRefs lists what Run pushes, in order. Trunk is only pushed when
// this run merged into it.
func (o *Orchestrator) publishRefs(s *Session) []string {
	var refs []string
	if !s.PreRelease && s.TrunkAdvanced {
		refs = append(refs, o.branches.Trunk)
	}
	return append(refs, s.ReleaseBranch, s.Tag)
}

// Cleanup deletes the local release branch of v.
func (o *Orchestrator) Cleanup(ctx context.Context, v version.Version) (string, error) {
	name := branch.ReleaseName(v)

	current, err := o.repo.CurrentBranch(ctx)
	if err != nil {
		return name, err
	}
	if current == name {
		return name, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot delete %s while it is checked out", name))
	}
	if !o.repo.BranchExists(ctx, name) {
		return name, model.NewCLIError(model.ExitGitError, fmt.Sprintf("branch %s does not exist", name))
	}

	logs.Info("Deleting branch %s", name)
	return name, o.repo.DeleteBranch(ctx, name)
}
