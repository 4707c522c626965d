package gogit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/domain/repositories"
)

const (
	publisherName = "go-git"
	tokenUsername = "x-access-token"
)

// PublisherRepository implements repositories.PublisherRepository with go-git,
// so no git binary is needed on the runner.
type PublisherRepository struct {
	repoDir string
}

// NewPublisherRepository creates a go-git publisher for the repository that
// contains repoDir.
func NewPublisherRepository(repoDir string) repositories.PublisherRepository {
	return &PublisherRepository{repoDir: repoDir}
}

func (it *PublisherRepository) Name() string { return publisherName }

// Publish stages the changed manifests, commits them with the configured
// identity as author and committer, and pushes to the default remote.
// Extra commit arguments are CLI-only and are ignored here.
func (it *PublisherRepository) Publish(ctx context.Context, input entities.PublishInput) error {
	if len(input.ChangedPaths) == 0 {
		return nil
	}
	if len(input.ExtraArgs) > 0 {
		logger.Warnf("[go-git] Ignoring commit arguments %v, use the git publisher to pass them", input.ExtraArgs)
	}

	repo, err := git.PlainOpenWithOptions(it.repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("opening git repo: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if stageErr := stage(worktree, input.ChangedPaths); stageErr != nil {
		return stageErr
	}

	signature := &object.Signature{
		Name:  input.Identity.Name,
		Email: input.Identity.Email,
		When:  time.Now(),
	}
	hash, err := worktree.Commit(input.Message, &git.CommitOptions{
		Author:    signature,
		Committer: signature,
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	logger.Infof("[go-git] Created commit %s", hash.String())

	pushErr := repo.PushContext(ctx, &git.PushOptions{Auth: authMethod(input.Token)})
	if pushErr != nil && !errors.Is(pushErr, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing: %w", pushErr)
	}

	logger.Infof("[go-git] Pushed %d synced manifests", len(input.ChangedPaths))
	return nil
}

// stage adds each path to the index, relative to the worktree root.
func stage(worktree *git.Worktree, paths []string) error {
	root := worktree.Filesystem.Root()
	for _, path := range paths {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		relPath, err := filepath.Rel(root, absPath)
		if err != nil {
			return fmt.Errorf("resolving %s against %s: %w", path, root, err)
		}

		if _, addErr := worktree.Add(filepath.ToSlash(relPath)); addErr != nil {
			return fmt.Errorf("staging %s: %w", relPath, addErr)
		}
	}
	return nil
}

func authMethod(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &http.BasicAuth{Username: tokenUsername, Password: token}
}
