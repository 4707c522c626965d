package commands

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/pkgsync/internal/infrastructure/repositories"
)

// Sync is the interface for the sync command.
type Sync interface {
	Execute(ctx context.Context, settings *entities.Settings) (*entities.SyncResult, error)
}

// SyncCommand runs the full pass:
// locate manifests -> load -> detect inconsistencies -> patch -> publish.
type SyncCommand struct {
	manifestRepository repositories.ManifestRepository
	publisherRegistry  *infraRepos.PublisherRegistry
}

// NewSyncCommand creates a new SyncCommand.
func NewSyncCommand(
	manifestRepository repositories.ManifestRepository,
	publisherRegistry *infraRepos.PublisherRegistry,
) *SyncCommand {
	return &SyncCommand{
		manifestRepository: manifestRepository,
		publisherRegistry:  publisherRegistry,
	}
}

// Execute runs one sync pass with the given settings. The publisher is
// resolved first, so an unknown one fails the pass before any file is touched.
// Each stage completes before the next one starts. Write failures are
// collected so that every manifest is attempted; any failure is returned once
// the pass is over.
func (it *SyncCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
) (*entities.SyncResult, error) {
	startTime := time.Now()
	defer func() {
		logger.Infof("Finished in %dms", time.Since(startTime).Milliseconds())
	}()

	result := &entities.SyncResult{}

	var publisher repositories.PublisherRepository
	if !settings.DryRun && !settings.NoCommit {
		found, lookupErr := it.publisherRegistry.Get(settings.Publisher)
		if lookupErr != nil {
			publishErr := &entities.PublishError{Cause: lookupErr}
			logger.Errorf("[sync] %v", publishErr)
			return result, publishErr
		}
		publisher = found
	}

	manifests, err := it.loadManifests(settings)
	if err != nil {
		return result, err
	}
	result.Scanned = len(manifests)

	result.Inconsistent = entities.FindInconsistencies(manifests)
	if len(result.Inconsistent) == 0 {
		logger.Infof("[sync] All %d manifests are consistent, nothing to do.", len(manifests))
		return result, nil
	}

	if settings.DryRun {
		logDryRun(result.Inconsistent)
		return result, nil
	}

	written, writeErr := it.writeManifests(result.Inconsistent)
	result.Written = written

	if len(written) == 0 {
		return result, writeErr
	}

	if publisher == nil {
		logger.Infof("[sync] Rewrote %d manifests, skipping commit.", len(written))
		return result, writeErr
	}

	if publishErr := publish(ctx, publisher, settings, written); publishErr != nil {
		logger.Errorf("[sync] %v", publishErr)
		return result, errors.Join(writeErr, publishErr)
	}
	result.Published = true

	return result, writeErr
}

// loadManifests locates and loads every manifest. Any load failure fails the
// whole pass so that detection never sees a partial record.
func (it *SyncCommand) loadManifests(settings *entities.Settings) ([]*entities.Manifest, error) {
	paths, err := it.manifestRepository.Locate(settings.PackagesPath, settings.ExcludePatterns)
	if err != nil {
		logger.Errorf("[sync] %v", err)
		return nil, err
	}

	if len(paths) == 0 {
		logger.Warnf("[sync] No manifests matched %q", settings.PackagesPath)
	} else {
		logger.Infof("[sync] Found %d manifests matching %q", len(paths), settings.PackagesPath)
	}

	manifests := make([]*entities.Manifest, 0, len(paths))
	var loadErrs []error
	for _, path := range paths {
		manifest, loadErr := it.manifestRepository.Load(path)
		if loadErr != nil {
			logger.Errorf("[sync] %v", loadErr)
			loadErrs = append(loadErrs, loadErr)
			continue
		}
		logger.Debugf("[sync] Loaded %s (%s@%s)", path, manifest.Name, manifest.Version)
		manifests = append(manifests, manifest)
	}

	if len(loadErrs) > 0 {
		return nil, errors.Join(loadErrs...)
	}
	return manifests, nil
}

// writeManifests patches and saves every inconsistent manifest, returning the
// paths that were written and the joined errors of those that were not.
func (it *SyncCommand) writeManifests(inconsistent []entities.InconsistentManifest) ([]string, error) {
	var written []string
	var writeErrs []error

	for i := range inconsistent {
		manifest := &inconsistent[i]

		if err := manifest.Apply(); err != nil {
			writeErr := &entities.WriteError{Path: manifest.Path, Cause: err}
			logger.Errorf("[sync] %v", writeErr)
			writeErrs = append(writeErrs, writeErr)
			continue
		}

		if err := it.manifestRepository.Save(manifest.Path, manifest.Content); err != nil {
			logger.Errorf("[sync] %v", err)
			writeErrs = append(writeErrs, err)
			continue
		}

		logger.Infof("[sync] Synced %d versions in %s", len(manifest.Reasons), manifest.Path)
		written = append(written, manifest.Path)
	}

	return written, errors.Join(writeErrs...)
}

func publish(
	ctx context.Context,
	publisher repositories.PublisherRepository,
	settings *entities.Settings,
	written []string,
) error {
	logger.Infof("[sync] Publishing %d manifests with %s", len(written), publisher.Name())
	if publishErr := publisher.Publish(ctx, settings.PublishInput(written)); publishErr != nil {
		return &entities.PublishError{Cause: publishErr}
	}
	return nil
}

func logDryRun(inconsistent []entities.InconsistentManifest) {
	for _, manifest := range inconsistent {
		for _, reason := range manifest.Reasons {
			logger.Infof("[sync] [DRY RUN] Would rewrite %s in %s", reason, manifest.Path)
		}
	}
}
