package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/pkgsync/internal/domain/repositories"
	fsRepo "github.com/rios0rios0/pkgsync/internal/infrastructure/repositories/filesystem"
	gitcliRepo "github.com/rios0rios0/pkgsync/internal/infrastructure/repositories/gitcli"
	gogitRepo "github.com/rios0rios0/pkgsync/internal/infrastructure/repositories/gogit"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() domainRepos.ManifestRepository {
		return fsRepo.NewManifestRepository()
	}); err != nil {
		return err
	}

	// Register publisher registry with all git backends
	if err := container.Provide(func() *PublisherRegistry {
		reg := NewPublisherRegistry()
		reg.Register(gitcliRepo.NewPublisherRepository("."))
		reg.Register(gogitRepo.NewPublisherRepository("."))
		return reg
	}); err != nil {
		return err
	}

	return nil
}
