package release

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// recorder collects the calls made on the fakes, in order, as short
// command-like strings such as "checkout master".
type recorder struct {
	calls []string
}

func (r *recorder) record(format string, args ...interface{}) string {
	call := fmt.Sprintf(format, args...)
	r.calls = append(r.calls, call)
	return call
}

// mutatingVerbs are the calls that change the repository or the manifest.
var mutatingVerbs = []string{
	"checkout", "create-branch", "delete-branch", "pull", "add-all",
	"commit", "merge", "tag", "push", "write-manifest",
}

// mutations returns only the mutating calls.
func (r *recorder) mutations() []string {
	var out []string
	for _, call := range r.calls {
		verb, _, _ := strings.Cut(call, " ")
		for _, m := range mutatingVerbs {
			if verb == m {
				out = append(out, call)
				break
			}
		}
	}
	return out
}

func (r *recorder) has(call string) bool {
	for _, c := range r.calls {
		if c == call {
			return true
		}
	}
	return false
}

// fakeRepo is a Repository that records calls and fails on demand.
type fakeRepo struct {
	rec      *recorder
	branch   string
	dirty    bool
	tags     []string
	branches map[string]bool

	// failOn maps a recorded call to the error it returns.
	failOn map[string]error
}

func newFakeRepo(rec *recorder, current string, tags ...string) *fakeRepo {
	return &fakeRepo{
		rec:      rec,
		branch:   current,
		tags:     tags,
		branches: map[string]bool{current: true, "master": true, "dev": true},
		failOn:   map[string]error{},
	}
}

func (f *fakeRepo) result(call string) error {
	return f.failOn[call]
}

func (f *fakeRepo) CurrentBranch(context.Context) (string, error) {
	return f.branch, f.result(f.rec.record("current-branch"))
}

func (f *fakeRepo) IsClean(context.Context) (bool, error) {
	return !f.dirty, f.result(f.rec.record("is-clean"))
}

func (f *fakeRepo) BranchExists(_ context.Context, name string) bool {
	f.rec.record("branch-exists %s", name)
	return f.branches[name]
}

func (f *fakeRepo) Checkout(_ context.Context, name string) error {
	if err := f.result(f.rec.record("checkout %s", name)); err != nil {
		return err
	}
	f.branch = name
	return nil
}

func (f *fakeRepo) CreateBranch(_ context.Context, name string) error {
	if err := f.result(f.rec.record("create-branch %s", name)); err != nil {
		return err
	}
	f.branches[name] = true
	f.branch = name
	return nil
}

func (f *fakeRepo) DeleteBranch(_ context.Context, name string) error {
	if err := f.result(f.rec.record("delete-branch %s", name)); err != nil {
		return err
	}
	delete(f.branches, name)
	return nil
}

func (f *fakeRepo) FetchTags(context.Context) error {
	return f.result(f.rec.record("fetch-tags"))
}

func (f *fakeRepo) Pull(_ context.Context, branch string) error {
	return f.result(f.rec.record("pull %s", branch))
}

func (f *fakeRepo) AddAll(context.Context) error {
	return f.result(f.rec.record("add-all"))
}

func (f *fakeRepo) Commit(_ context.Context, message string) error {
	return f.result(f.rec.record("commit %s", message))
}

func (f *fakeRepo) MergeNoFastForward(_ context.Context, branch, message string) error {
	return f.result(f.rec.record("merge %s %s", branch, message))
}

func (f *fakeRepo) CreateTag(_ context.Context, name, message string) error {
	call := "tag " + name
	if message != "" {
		call += " -m " + message
	}
	f.rec.calls = append(f.rec.calls, call)
	return f.result(call)
}

func (f *fakeRepo) Push(_ context.Context, ref string) error {
	return f.result(f.rec.record("push %s", ref))
}

func (f *fakeRepo) ListTags(_ context.Context, pattern string) ([]string, error) {
	return f.tags, f.result(f.rec.record("list-tags %s", pattern))
}

// fakeManifest is a ManifestStore holding the version in memory.
type fakeManifest struct {
	rec     *recorder
	version version.Version
	dirErr  error
	readErr error
}

func (f *fakeManifest) ComponentDir() (string, error) {
	f.rec.record("component-dir")
	if f.dirErr != nil {
		return "", f.dirErr
	}
	return "custom_components/integration_name", nil
}

func (f *fakeManifest) ReadVersion() (version.Version, error) {
	f.rec.record("read-manifest")
	return f.version, f.readErr
}

func (f *fakeManifest) WriteVersion(v version.Version) error {
	f.rec.record("write-manifest %s", v)
	f.version = v
	return nil
}

// fakePrompter answers from canned queues and remembers what it was asked.
//
// interruptAt simulates Ctrl-C while the operator is being asked: when the
// n-th confirmation (1-based) is shown, or the menu when interruptMenu is
// set, interrupt is called and the prompt returns ctx.Err().
type fakePrompter struct {
	intents []version.Intent
	answers []bool
	asked   []string
	menus   int

	interrupt     context.CancelFunc
	interruptAt   int
	interruptMenu bool
}

func (f *fakePrompter) SelectIntent(ctx context.Context) (version.Intent, error) {
	f.menus++
	if f.interruptMenu {
		f.interrupt()
		return version.IntentUnset, ctx.Err()
	}
	if len(f.intents) == 0 {
		return version.IntentUnset, fmt.Errorf("unexpected release type prompt")
	}
	i := f.intents[0]
	f.intents = f.intents[1:]
	return i, nil
}

func (f *fakePrompter) Confirm(ctx context.Context, message string) (bool, error) {
	f.asked = append(f.asked, message)
	if f.interruptAt == len(f.asked) {
		f.interrupt()
		return false, ctx.Err()
	}
	if len(f.answers) == 0 {
		return false, fmt.Errorf("unexpected confirmation: %s", message)
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a, nil
}

// errGit stands in for a failing git command.
var errGit = model.NewCLIError(model.ExitGitError, "git merge failed")
