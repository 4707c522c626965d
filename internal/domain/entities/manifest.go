package entities

import (
	"encoding/json"
	"fmt"
)

const (
	// DependenciesKind is the "dependencies" map of a package.json.
	DependenciesKind = "dependencies"
	// DevDependenciesKind is the "devDependencies" map of a package.json.
	DevDependenciesKind = "devDependencies"
)

// DependencyKinds lists the dependency maps in the order they are inspected.
var DependencyKinds = []string{DependenciesKind, DevDependenciesKind} //nolint:gochecknoglobals // fixed lookup order

// Manifest is a package.json loaded from disk. Content holds the exact file
// text; the remaining fields are decoded from it.
type Manifest struct {
	Path            string
	Content         string
	Name            string
	Version         string
	Dependencies    map[string]json.RawMessage
	DevDependencies map[string]json.RawMessage
}

type manifestDocument struct {
	Name            string                     `json:"name"`
	Version         string                     `json:"version"`
	Dependencies    map[string]json.RawMessage `json:"dependencies"`
	DevDependencies map[string]json.RawMessage `json:"devDependencies"`
}

// ParseManifest decodes content into a Manifest bound to path.
// Dependency values are kept raw so that non-string entries (for example
// resolved workspace objects) can be told apart from version specifiers.
func ParseManifest(path, content string) (*Manifest, error) {
	var doc manifestDocument
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON: %w", err)
	}

	return &Manifest{
		Path:            path,
		Content:         content,
		Name:            doc.Name,
		Version:         doc.Version,
		Dependencies:    doc.Dependencies,
		DevDependencies: doc.DevDependencies,
	}, nil
}

// DependencyMap returns the dependency map of the given kind, or nil when the
// manifest does not declare it.
func (it *Manifest) DependencyMap(kind string) map[string]json.RawMessage {
	switch kind {
	case DependenciesKind:
		return it.Dependencies
	case DevDependenciesKind:
		return it.DevDependencies
	default:
		return nil
	}
}

// VersionSpec returns the string specifier declared for name in the given
// dependency map. The boolean is false when the entry is missing or is not a
// JSON string.
func (it *Manifest) VersionSpec(kind, name string) (string, bool) {
	raw, ok := it.DependencyMap(kind)[name]
	if !ok {
		return "", false
	}

	var spec string
	if err := json.Unmarshal(raw, &spec); err != nil {
		return "", false
	}
	return spec, true
}

// Reason records a dependency whose declared specifier must be rewritten.
type Reason struct {
	DependencyName string
	OldVersionSpec string
	NewVersionSpec string
}

func (it Reason) String() string {
	return fmt.Sprintf("%s %s -> %s", it.DependencyName, it.OldVersionSpec, it.NewVersionSpec)
}

// InconsistentManifest is a manifest together with every reason it was flagged.
type InconsistentManifest struct {
	*Manifest
	Reasons []Reason
}
