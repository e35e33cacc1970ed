package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"

	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

const (
	// DefaultRoot is the manifest root, relative to the repository root.
	DefaultRoot = "custom_components"

	// DefaultFileName is the manifest file inside the component directory.
	DefaultFileName = "manifest.json"

	// versionKey is the manifest field holding the canonical version.
	versionKey = "version"
)

// Store locates and edits the manifest below Root.
type Store struct {
	// Root is the directory that must contain exactly one component directory.
	Root string

	// FileName is the manifest file name inside the component directory.
	FileName string
}

// NewStore creates a Store. An empty fileName selects DefaultFileName.
func NewStore(root, fileName string) *Store {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Store{Root: root, FileName: fileName}
}

// ComponentDir returns the single component directory under Root.
//
// Hidden directories (".git", ".mypy_cache", ...) are not candidates. A
// missing root, an empty root and a root with several directories are all
// configuration errors: the manifest location would be a guess.
func (s *Store) ComponentDir() (string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return "", model.WrapCLIError(model.ExitManifestError,
			fmt.Sprintf("cannot list manifest root %s", s.Root),
			fmt.Errorf("%w: %w", model.ErrAmbiguousComponentDirectory, err))
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			candidates = append(candidates, entry.Name())
		}
	}

	if len(candidates) != 1 {
		return "", model.WrapCLIError(model.ExitManifestError,
			fmt.Sprintf("expected exactly one component directory in %s, found %d %v", s.Root, len(candidates), candidates),
			model.ErrAmbiguousComponentDirectory)
	}
	return filepath.Join(s.Root, candidates[0]), nil
}

// Path returns the manifest file path.
func (s *Store) Path() (string, error) {
	dir, err := s.ComponentDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, s.FileName), nil
}

// ReadVersion returns the version recorded in the manifest.
func (s *Store) ReadVersion() (version.Version, error) {
	path, err := s.Path()
	if err != nil {
		return version.Version{}, err
	}

	data, err := readManifest(path)
	if err != nil {
		return version.Version{}, err
	}

	result := gjson.GetBytes(data, versionKey)
	if !result.Exists() || result.Type != gjson.String {
		return version.Version{}, model.WrapCLIError(model.ExitManifestError,
			fmt.Sprintf("manifest %s has no string %q field", path, versionKey),
			model.ErrInvalidVersionFormat)
	}

	v, err := version.Parse(result.String())
	if err != nil {
		return version.Version{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return v, nil
}

// WriteVersion records v in the manifest's "version" field.
//
// The new content is written to a temporary file next to the manifest and
// renamed over it, so a crash leaves either the old or the new manifest.
func (s *Store) WriteVersion(v version.Version) error {
	path, err := s.Path()
	if err != nil {
		return err
	}

	data, err := readManifest(path)
	if err != nil {
		return err
	}

	updated, err := sjson.SetBytes(data, versionKey, v.String())
	if err != nil {
		return model.WrapCLIError(model.ExitManifestError,
			fmt.Sprintf("failed to update %s", path), err)
	}

	if err := writeAtomic(path, updated); err != nil {
		return model.WrapCLIError(model.ExitManifestError,
			fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// readManifest returns the manifest bytes as valid JSON. Plain JSON is
// returned untouched so in-place edits keep its formatting; JSONC input is
// converted, which drops comments.
func readManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitManifestError,
			fmt.Sprintf("failed to read manifest %s", path), err)
	}

	if !gjson.ValidBytes(data) {
		data = jsonc.ToJSON(data)
		if !gjson.ValidBytes(data) {
			return nil, model.NewCLIError(model.ExitManifestError,
				fmt.Sprintf("manifest %s is not valid JSON", path))
		}
	}

	if !gjson.ParseBytes(data).IsObject() {
		return nil, model.NewCLIError(model.ExitManifestError,
			fmt.Sprintf("manifest %s is not a JSON object", path))
	}
	return data, nil
}

// writeAtomic replaces path with data, keeping the original file mode.
func writeAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
