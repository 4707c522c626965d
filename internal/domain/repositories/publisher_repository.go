package repositories

import (
	"context"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

// PublisherRepository commits the rewritten manifests and pushes them to the
// remote. Each implementation drives a different git backend.
type PublisherRepository interface {
	// Name returns the publisher identifier (e.g. "git", "go-git").
	Name() string

	// Publish stages input.ChangedPaths, commits them with the configured
	// identity and message, and pushes the commit.
	Publish(ctx context.Context, input entities.PublishInput) error
}
