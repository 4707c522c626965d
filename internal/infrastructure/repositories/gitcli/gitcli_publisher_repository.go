package gitcli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/domain/repositories"
)

const publisherName = "git"

// CommandRunner runs git with args inside dir and returns its combined output.
type CommandRunner func(ctx context.Context, dir string, args ...string) (string, error)

// PublisherRepository implements repositories.PublisherRepository by shelling
// out to the git binary, which lets extra commit arguments (e.g. "--no-verify",
// "--signoff") pass straight through.
type PublisherRepository struct {
	repoDir string
	run     CommandRunner
}

// NewPublisherRepository creates a git CLI publisher working in repoDir.
func NewPublisherRepository(repoDir string) repositories.PublisherRepository {
	return NewPublisherRepositoryWithRunner(repoDir, runGit)
}

// NewPublisherRepositoryWithRunner creates a git CLI publisher with a custom runner.
func NewPublisherRepositoryWithRunner(repoDir string, run CommandRunner) *PublisherRepository {
	return &PublisherRepository{repoDir: repoDir, run: run}
}

func (it *PublisherRepository) Name() string { return publisherName }

// Publish configures the identity, stages the changed manifests, commits and
// pushes. It stops at the first failing step.
func (it *PublisherRepository) Publish(ctx context.Context, input entities.PublishInput) error {
	if len(input.ChangedPaths) == 0 {
		return nil
	}

	commitArgs := append([]string{"commit", "-m", input.Message}, input.ExtraArgs...)
	steps := [][]string{
		{"config", "user.email", input.Identity.Email},
		{"config", "user.name", input.Identity.Name},
		append([]string{"add", "--"}, input.ChangedPaths...),
		commitArgs,
		{"push"},
	}

	for _, args := range steps {
		output, err := it.run(ctx, it.repoDir, args...)
		if trimmed := strings.TrimSpace(output); trimmed != "" {
			logger.Infof("[git] %s:\n%s", args[0], trimmed)
		}
		if err != nil {
			return fmt.Errorf("git %s: %w", args[0], err)
		}
	}

	logger.Infof("[git] Pushed %d synced manifests", len(input.ChangedPaths))
	return nil
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	return string(output), err
}
