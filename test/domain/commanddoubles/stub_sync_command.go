//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/pkgsync/internal/domain/commands"
	"github.com/rios0rios0/pkgsync/internal/domain/entities"
)

// StubSyncCommand is a stub implementation of commands.Sync.
type StubSyncCommand struct {
	ExecuteCallCount int
	ExecuteResult    *entities.SyncResult
	ExecuteErr       error
	LastSettings     *entities.Settings
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*entities.SyncResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	if s.ExecuteResult == nil {
		return &entities.SyncResult{}, s.ExecuteErr
	}
	return s.ExecuteResult, s.ExecuteErr
}
