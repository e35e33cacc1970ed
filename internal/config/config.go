// Package config loads the optional per-repository settings of cutrelease.
//
// Settings live in .cutrelease.yaml at the repository root. Every key is
// optional; a missing file yields Default().
//
//	trunk: master
//	development: dev
//	remote: origin
//	annotateTags: false
//	manifest:
//	  root: custom_components
//	  file: manifest.json
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/cutrelease/internal/branch"
	"github.com/mmr-tortoise/cutrelease/internal/git"
	"github.com/mmr-tortoise/cutrelease/internal/manifest"
	"github.com/mmr-tortoise/cutrelease/internal/model"
)

// FileName is the config file looked up at the repository root.
const FileName = ".cutrelease.yaml"

// Config holds the repository settings.
type Config struct {
	// Trunk receives merges of final releases.
	Trunk string `yaml:"trunk"`

	// Development is the branch new releases are started from.
	Development string `yaml:"development"`

	// Remote is the git remote tags are fetched from and pushed to.
	Remote string `yaml:"remote"`

	// AnnotateTags creates annotated release tags instead of lightweight ones.
	AnnotateTags bool `yaml:"annotateTags"`

	Manifest Manifest `yaml:"manifest"`
}

// Manifest locates the component manifest.
type Manifest struct {
	// Root is relative to the repository root unless absolute.
	Root string `yaml:"root"`

	// File is the manifest file name inside the component directory.
	File string `yaml:"file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Trunk:       branch.DefaultTrunk,
		Development: branch.DefaultDevelopment,
		Remote:      git.DefaultRemote,
		Manifest: Manifest{
			Root: manifest.DefaultRoot,
			File: manifest.DefaultFileName,
		},
	}
}

// Load reads path, or FileName under repoRoot when path is empty.
// Keys absent from the file keep their default values. A missing file is
// only an error when path was given explicitly.
func Load(repoRoot, path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(repoRoot, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Decoding into the populated defaults leaves unspecified keys untouched.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings are usable.
func (c Config) Validate() error {
	if c.Trunk == "" || c.Development == "" {
		return errors.New("trunk and development branch names must not be empty")
	}
	if c.Trunk == c.Development {
		return fmt.Errorf("trunk and development must differ (both %q)", c.Trunk)
	}
	if c.Remote == "" {
		return errors.New("remote must not be empty")
	}
	if c.Manifest.Root == "" || c.Manifest.File == "" {
		return errors.New("manifest root and file must not be empty")
	}
	if filepath.Base(c.Manifest.File) != c.Manifest.File {
		return fmt.Errorf("manifest file %q must be a bare file name", c.Manifest.File)
	}
	return nil
}

// Classifier returns the branch classifier for these settings.
func (c Config) Classifier() branch.Classifier {
	return branch.Classifier{Trunk: c.Trunk, Development: c.Development}
}

// ManifestRoot resolves the manifest root against repoRoot.
func (c Config) ManifestRoot(repoRoot string) string {
	if filepath.IsAbs(c.Manifest.Root) {
		return c.Manifest.Root
	}
	return filepath.Join(repoRoot, c.Manifest.Root)
}

// Wrap converts a config error into a CLIError for the command layer.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return model.WrapCLIError(model.ExitGeneralError, "configuration error", err)
}
