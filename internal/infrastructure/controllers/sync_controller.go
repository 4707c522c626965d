package controllers

import (
	"context"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgsync/internal/domain/commands"
	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

// SyncController handles the "sync" subcommand, which is also what the root
// command runs when invoked as a CI step.
type SyncController struct {
	command commands.Sync
	lookup  EnvLookup
}

// NewSyncController creates a new SyncController reading action inputs from
// the process environment.
func NewSyncController(command commands.Sync) *SyncController {
	return NewSyncControllerWithLookup(command, os.LookupEnv)
}

// NewSyncControllerWithLookup creates a SyncController with a custom
// environment lookup.
func NewSyncControllerWithLookup(command commands.Sync, lookup EnvLookup) *SyncController {
	return &SyncController{command: command, lookup: lookup}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync",
		Short: "Synchronize internal package versions across manifests",
		Long: `Scan the package.json files selected by --packages-path, find packages whose
dependents declare an outdated version, rewrite those declarations in place,
and commit and push the result.`,
	}
}

// AddFlags adds the sync-specific flags to the given Cobra command.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	addSettingsFlags(cmd)
	addPublishFlags(cmd)
}

// Execute runs a sync pass.
func (it *SyncController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := buildSettings(cmd, it.lookup)
	if err != nil {
		return err
	}

	result, runErr := it.command.Execute(ctx, settings)
	if runErr != nil {
		logger.Errorf("Sync failed: %v", runErr)
		return runErr
	}

	logger.Infof(
		"Sync complete: %d manifests scanned, %d inconsistent, %d rewritten, published: %v",
		result.Scanned, len(result.Inconsistent), len(result.Written), result.Published,
	)
	return nil
}
