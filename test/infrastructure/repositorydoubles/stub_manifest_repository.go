//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/domain/repositories"
)

// SpyManifestRepository implements repositories.ManifestRepository in memory.
// Files maps a path to its content; Locate returns Paths when set, otherwise
// nothing.
type SpyManifestRepository struct {
	// --- Locate ---
	Paths           []string
	LocateErr       error
	LocatedPatterns []string
	LocatedExcludes [][]string

	// --- Load ---
	Files    map[string]string
	LoadErrs map[string]error
	Loaded   []string

	// --- Save ---
	SaveErrs  map[string]error
	Saved     map[string]string
	SaveCalls []string
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (r *SpyManifestRepository) Locate(pattern string, excludes []string) ([]string, error) {
	r.LocatedPatterns = append(r.LocatedPatterns, pattern)
	r.LocatedExcludes = append(r.LocatedExcludes, excludes)
	if r.LocateErr != nil {
		return nil, r.LocateErr
	}
	return r.Paths, nil
}

func (r *SpyManifestRepository) Load(path string) (*entities.Manifest, error) {
	r.Loaded = append(r.Loaded, path)
	if err, ok := r.LoadErrs[path]; ok {
		return nil, err
	}

	content, ok := r.Files[path]
	if !ok {
		return nil, &entities.ReadError{Path: path, Cause: fmt.Errorf("file not found: %s", path)}
	}

	manifest, err := entities.ParseManifest(path, content)
	if err != nil {
		return nil, &entities.ParseError{Path: path, Cause: err}
	}
	return manifest, nil
}

func (r *SpyManifestRepository) Save(path, content string) error {
	r.SaveCalls = append(r.SaveCalls, path)
	if err, ok := r.SaveErrs[path]; ok {
		return &entities.WriteError{Path: path, Cause: err}
	}

	if r.Saved == nil {
		r.Saved = make(map[string]string)
	}
	r.Saved[path] = content
	return nil
}
