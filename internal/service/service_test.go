package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inventra/inventra-backend/internal/automation"
	"github.com/inventra/inventra-backend/internal/repository"
	"github.com/inventra/inventra-backend/migrations"
)

func newTestRepo(t *testing.T) *repository.SQLiteRepository {
	t.Helper()
	repo, err := repository.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	schema, err := migrations.FS.ReadFile("001_initial_schema.sql")
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations(string(schema)))
	return repo
}

func newTestEngine(t *testing.T, repo *repository.SQLiteRepository) *automation.Engine {
	t.Helper()
	engine := automation.NewEngine(repo, nil, nil)
	require.NoError(t, engine.Refresh(context.Background()))
	return engine
}

// recordingBroadcaster captures refresh broadcasts for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) BroadcastRefresh(domain, event string, resource interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, domain+":"+event)
}

func (b *recordingBroadcaster) all() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}
