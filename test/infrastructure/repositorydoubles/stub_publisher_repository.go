//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/domain/repositories"
)

// SpyPublisherRepository implements repositories.PublisherRepository as a configurable spy.
type SpyPublisherRepository struct {
	// --- identity ---
	PublisherName string

	// --- Publish ---
	PublishErr    error
	PublishInputs []entities.PublishInput
}

var _ repositories.PublisherRepository = (*SpyPublisherRepository)(nil)

func (p *SpyPublisherRepository) Name() string { return p.PublisherName }

func (p *SpyPublisherRepository) Publish(_ context.Context, input entities.PublishInput) error {
	p.PublishInputs = append(p.PublishInputs, input)
	return p.PublishErr
}

// DummyPublisherRepository is a no-op implementation of repositories.PublisherRepository.
type DummyPublisherRepository struct{}

var _ repositories.PublisherRepository = (*DummyPublisherRepository)(nil)

func (d *DummyPublisherRepository) Name() string { return "dummy" }

func (d *DummyPublisherRepository) Publish(_ context.Context, _ entities.PublishInput) error {
	return nil
}
