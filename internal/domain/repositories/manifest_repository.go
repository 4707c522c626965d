package repositories

import (
	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

// ManifestRepository abstracts where package manifests live.
// Implementations return *entities.DiscoveryError, *entities.ReadError,
// *entities.ParseError and *entities.WriteError so that callers can tell the
// failure stages apart.
type ManifestRepository interface {
	// Locate expands pattern into the ordered list of manifest paths, leaving
	// out anything matched by excludes and any dependency-cache directory.
	Locate(pattern string, excludes []string) ([]string, error)

	// Load reads and decodes the manifest at path.
	Load(path string) (*entities.Manifest, error)

	// Save replaces the content of the manifest at path.
	Save(path, content string) error
}
