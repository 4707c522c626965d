package filesystem

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/domain/repositories"
)

const (
	// dependencyCacheDir is never scanned, whatever the pattern says.
	dependencyCacheDir = "node_modules"
	defaultFileMode    = 0o644
)

// ManifestRepository implements repositories.ManifestRepository on the local
// filesystem.
type ManifestRepository struct{}

// NewManifestRepository creates a new filesystem manifest repository.
func NewManifestRepository() repositories.ManifestRepository {
	return &ManifestRepository{}
}

// Locate expands pattern (supporting "**") relative to the working directory
// and returns the sorted list of matching files. Hidden directories and files
// below the pattern's base are skipped unless the pattern names them. A
// directory that cannot be read fails the whole lookup.
func (it *ManifestRepository) Locate(pattern string, excludes []string) ([]string, error) {
	for _, p := range append([]string{pattern}, excludes...) {
		if !doublestar.ValidatePathPattern(filepath.FromSlash(p)) {
			return nil, &entities.DiscoveryError{Pattern: p, Cause: doublestar.ErrBadPattern}
		}
	}

	matches, err := doublestar.FilepathGlob(
		filepath.FromSlash(pattern),
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		return nil, &entities.DiscoveryError{Pattern: pattern, Cause: err}
	}

	paths := make([]string, 0, len(matches))
	for _, match := range matches {
		if isExcluded(match, pattern, excludes) {
			logger.Debugf("[sync] Excluding %s", match)
			continue
		}
		paths = append(paths, match)
	}

	sort.Strings(paths)
	return paths, nil
}

// Load reads the manifest at path and decodes it.
func (it *ManifestRepository) Load(path string) (*entities.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.ReadError{Path: path, Cause: err}
	}

	manifest, parseErr := entities.ParseManifest(path, string(data))
	if parseErr != nil {
		return nil, &entities.ParseError{Path: path, Cause: parseErr}
	}
	return manifest, nil
}

// Save overwrites the manifest at path, keeping its permission bits.
func (it *ManifestRepository) Save(path, content string) error {
	mode := os.FileMode(defaultFileMode)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return &entities.WriteError{Path: path, Cause: err}
	}
	return nil
}

func isExcluded(path, pattern string, excludes []string) bool {
	if slices.Contains(strings.Split(filepath.ToSlash(path), "/"), dependencyCacheDir) {
		return true
	}
	if isHidden(path, pattern) {
		return true
	}

	for _, exclude := range excludes {
		if matched, _ := doublestar.PathMatch(filepath.FromSlash(exclude), path); matched {
			return true
		}
	}
	return false
}

// isHidden reports whether path has a dot-prefixed component below the static
// base of pattern that the pattern does not spell out literally.
func isHidden(path, pattern string) bool {
	base, globPart := doublestar.SplitPattern(filepath.ToSlash(pattern))
	rel, err := filepath.Rel(filepath.FromSlash(base), path)
	if err != nil {
		return false
	}

	named := strings.Split(globPart, "/")
	for _, component := range strings.Split(filepath.ToSlash(rel), "/") {
		if len(component) > 1 && strings.HasPrefix(component, ".") && component != ".." &&
			!slices.Contains(named, component) {
			return true
		}
	}
	return false
}
