//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"strconv"
	"strings"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

type dependencyEntry struct {
	name  string
	value string // raw JSON value
}

// ManifestBuilder helps create package.json fixtures with a fluent interface.
// The content it renders uses two-space indentation and keeps entries in the
// order they were added.
type ManifestBuilder struct {
	*testkit.BaseBuilder
	path            string
	name            string
	version         string
	dependencies    []dependencyEntry
	devDependencies []dependencyEntry
}

// NewManifestBuilder creates a new manifest builder with sensible defaults.
func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "packages/test/package.json",
		name:        "test-package",
		version:     "1.0.0",
	}
}

// WithPath sets the manifest path.
func (b *ManifestBuilder) WithPath(path string) *ManifestBuilder {
	b.path = path
	return b
}

// WithName sets the package name. An empty name omits the field.
func (b *ManifestBuilder) WithName(name string) *ManifestBuilder {
	b.name = name
	return b
}

// WithVersion sets the package version. An empty version omits the field.
func (b *ManifestBuilder) WithVersion(version string) *ManifestBuilder {
	b.version = version
	return b
}

// WithDependency adds a string entry to "dependencies".
func (b *ManifestBuilder) WithDependency(name, spec string) *ManifestBuilder {
	b.dependencies = append(b.dependencies, dependencyEntry{name: name, value: quote(spec)})
	return b
}

// WithRawDependency adds an entry to "dependencies" with a raw JSON value.
func (b *ManifestBuilder) WithRawDependency(name, rawJSON string) *ManifestBuilder {
	b.dependencies = append(b.dependencies, dependencyEntry{name: name, value: rawJSON})
	return b
}

// WithDevDependency adds a string entry to "devDependencies".
func (b *ManifestBuilder) WithDevDependency(name, spec string) *ManifestBuilder {
	b.devDependencies = append(b.devDependencies, dependencyEntry{name: name, value: quote(spec)})
	return b
}

// Build creates the manifest (satisfies testkit.Builder interface).
func (b *ManifestBuilder) Build() interface{} {
	return b.BuildManifest()
}

// BuildContent renders the package.json text.
func (b *ManifestBuilder) BuildContent() string {
	var fields []string
	if b.name != "" {
		fields = append(fields, fmt.Sprintf(`  "name": %s`, quote(b.name)))
	}
	if b.version != "" {
		fields = append(fields, fmt.Sprintf(`  "version": %s`, quote(b.version)))
	}
	if len(b.dependencies) > 0 {
		fields = append(fields, renderMap(entities.DependenciesKind, b.dependencies))
	}
	if len(b.devDependencies) > 0 {
		fields = append(fields, renderMap(entities.DevDependenciesKind, b.devDependencies))
	}
	return "{\n" + strings.Join(fields, ",\n") + "\n}\n"
}

// BuildManifest creates the parsed manifest with a concrete return type.
func (b *ManifestBuilder) BuildManifest() *entities.Manifest {
	manifest, err := entities.ParseManifest(b.path, b.BuildContent())
	if err != nil {
		panic(fmt.Sprintf("manifest builder produced invalid JSON: %v", err))
	}
	return manifest
}

// Reset clears the builder state, allowing it to be reused.
func (b *ManifestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "packages/test/package.json"
	b.name = "test-package"
	b.version = "1.0.0"
	b.dependencies = nil
	b.devDependencies = nil
	return b
}

// Clone creates a deep copy of the ManifestBuilder.
func (b *ManifestBuilder) Clone() testkit.Builder {
	return &ManifestBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:            b.path,
		name:            b.name,
		version:         b.version,
		dependencies:    append([]dependencyEntry(nil), b.dependencies...),
		devDependencies: append([]dependencyEntry(nil), b.devDependencies...),
	}
}

func renderMap(key string, entries []dependencyEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf(`    %s: %s`, quote(entry.name), entry.value))
	}
	return fmt.Sprintf("  %s: {\n%s\n  }", quote(key), strings.Join(lines, ",\n"))
}

// quote renders s as a JSON string literal without HTML escaping, so that
// specifiers such as ">=1.0.0" stay readable in the rendered text.
func quote(s string) string {
	return strconv.Quote(s)
}
