package controllers

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgsync/internal/domain/commands"
	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

// CheckController handles the "check" subcommand: it reports inconsistencies
// without touching any file and fails when there is at least one.
type CheckController struct {
	command commands.Sync
	lookup  EnvLookup
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Sync) *CheckController {
	return NewCheckControllerWithLookup(command, os.LookupEnv)
}

// NewCheckControllerWithLookup creates a CheckController with a custom
// environment lookup.
func NewCheckControllerWithLookup(command commands.Sync, lookup EnvLookup) *CheckController {
	return &CheckController{command: command, lookup: lookup}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Fail when internal package versions are out of sync",
		Long: `Scan the package.json files selected by --packages-path and report every
outdated internal dependency declaration. Nothing is written or committed;
the command exits non-zero when an inconsistency is found.`,
	}
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	addSettingsFlags(cmd)
}

// Execute runs a detection-only pass.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := buildSettings(cmd, it.lookup)
	if err != nil {
		return err
	}
	settings.DryRun = true
	settings.NoCommit = true

	result, runErr := it.command.Execute(ctx, settings)
	if runErr != nil {
		logger.Errorf("Check failed: %v", runErr)
		return runErr
	}

	if len(result.Inconsistent) > 0 {
		return fmt.Errorf("%d of %d manifests declare outdated internal versions",
			len(result.Inconsistent), result.Scanned)
	}
	return nil
}
