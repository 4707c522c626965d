package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

const (
	flagConfig          = "config"
	flagVerbose         = "verbose"
	flagDryRun          = "dry-run"
	flagPackagesPath    = "packages-path"
	flagCommitMessage   = "sync-commit-message"
	flagCommitEmail     = "sync-commit-email"
	flagCommitName      = "sync-commit-name"
	flagCommitArguments = "commit-arguments"
	flagPublisher       = "publisher"
	flagNoCommit        = "no-commit"
	flagExclude         = "exclude"
)

// EnvLookup resolves an environment variable, like os.LookupEnv.
type EnvLookup func(key string) (string, bool)

// addSettingsFlags adds the flags shared by every command that builds Settings.
func addSettingsFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagPackagesPath, "",
		fmt.Sprintf("Glob selecting the manifests to scan (default %q)", entities.DefaultPackagesPath))
	cmd.Flags().StringSlice(flagExclude, nil,
		"Additional glob patterns to leave out (node_modules is always excluded)")
}

// addPublishFlags adds the flags that only matter when committing.
func addPublishFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagCommitMessage, "", "Commit message for the synced manifests")
	cmd.Flags().String(flagCommitEmail, "", "Git identity email")
	cmd.Flags().String(flagCommitName, "", "Git identity display name")
	cmd.Flags().String(flagCommitArguments, "", "Extra arguments appended to the commit invocation, split with shell quoting rules")
	cmd.Flags().String(flagPublisher, "", "Git backend used to commit and push (git, go-git)")
	cmd.Flags().Bool(flagNoCommit, false, "Rewrite manifests without committing them")
}

// buildSettings resolves settings with precedence
// defaults < config file < action inputs < flags.
func buildSettings(cmd *cobra.Command, lookup EnvLookup) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString(flagConfig)
	if cfgPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			cfgPath = found
		}
	}
	if cfgPath != "" {
		logger.Infof("Using config file: %s", cfgPath)
	}

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	settings.ApplyActionInputs(lookup)
	if flagErr := applyFlags(cmd, settings); flagErr != nil {
		return nil, flagErr
	}

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}
	return settings, nil
}

func applyFlags(cmd *cobra.Command, settings *entities.Settings) error {
	flags := cmd.Flags()
	changedString := func(name string, target *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	changedString(flagPackagesPath, &settings.PackagesPath)
	changedString(flagCommitMessage, &settings.CommitMessage)
	changedString(flagCommitEmail, &settings.CommitEmail)
	changedString(flagCommitName, &settings.CommitName)
	changedString(flagPublisher, &settings.Publisher)

	if flags.Lookup(flagCommitArguments) != nil && flags.Changed(flagCommitArguments) {
		raw, _ := flags.GetString(flagCommitArguments)
		args, err := entities.SplitCommitArguments(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", flagCommitArguments, err)
		}
		settings.CommitArguments = args
	}
	if flags.Lookup(flagExclude) != nil && flags.Changed(flagExclude) {
		excludes, _ := flags.GetStringSlice(flagExclude)
		settings.ExcludePatterns = append(settings.ExcludePatterns, excludes...)
	}
	if flags.Lookup(flagNoCommit) != nil && flags.Changed(flagNoCommit) {
		settings.NoCommit, _ = flags.GetBool(flagNoCommit)
	}
	if flags.Lookup(flagDryRun) != nil {
		settings.DryRun, _ = flags.GetBool(flagDryRun)
	}

	if verbose, _ := flags.GetBool(flagVerbose); verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	return nil
}
