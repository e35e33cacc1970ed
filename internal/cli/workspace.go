package cli

import (
	"context"
	"os"

	"github.com/mmr-tortoise/cutrelease/internal/config"
	"github.com/mmr-tortoise/cutrelease/internal/git"
	"github.com/mmr-tortoise/cutrelease/internal/logs"
	"github.com/mmr-tortoise/cutrelease/internal/manifest"
	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/prompt"
	"github.com/mmr-tortoise/cutrelease/internal/release"
)

// workspace is the repository the current directory belongs to, with its
// configuration loaded.
type workspace struct {
	root     string
	cfg      config.Config
	repo     *git.Repository
	manifest *manifest.Store
}

// openWorkspace locates the repository root from the working directory and
// loads its configuration.
func openWorkspace(ctx context.Context) (*workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}

	root, err := git.RepoRoot(ctx, cwd)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGitError, "not inside a git repository", err)
	}
	logs.Debug("Repository root: %s", root)

	cfg, err := config.Load(root, configPath)
	if err != nil {
		return nil, config.Wrap(err)
	}

	return &workspace{
		root:     root,
		cfg:      cfg,
		repo:     git.NewRepository(root, cfg.Remote),
		manifest: manifest.NewStore(cfg.ManifestRoot(root), cfg.Manifest.File),
	}, nil
}

// orchestrator wires the workspace to an operator prompter.
func (w *workspace) orchestrator(assumeYes bool) *release.Orchestrator {
	p := prompt.New(os.Stdin, promptOutput(), prompt.WithAssumeYes(assumeYes))
	return release.New(w.repo, w.manifest, p, w.cfg.Classifier(),
		release.WithAnnotatedTags(w.cfg.AnnotateTags))
}
