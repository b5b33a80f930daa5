package repository

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	pg "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

type stubSessionRepository struct {
	mu    sync.Mutex
	ss    *models.Session
	err   error
	calls int
}

func (s *stubSessionRepository) FindWithEvent(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.ss == nil || s.ss.ID != sessionID {
		return nil, pg.ErrSessionNotFound
	}
	return s.ss, nil
}

func (s *stubSessionRepository) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// deadClient points at a port nothing listens on; every cache call
// fails, which must leave the read path fully functional.
func deadClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedSessionRepositoryFallsBackWhenCacheIsDown(t *testing.T) {
	ss := &models.Session{ID: "session-1", EventID: "event-1", Status: models.SessionStatusOnSale}
	inner := &stubSessionRepository{ss: ss}
	repo := NewCachedSessionRepository(inner, deadClient(), time.Minute, logger.InitializeTestZapLogger())

	got, err := repo.FindWithEvent(context.Background(), "session-1")

	require.NoError(t, err)
	assert.Equal(t, "session-1", got.ID)
	assert.Equal(t, 1, inner.callCount())
}

func TestCachedSessionRepositoryPropagatesInnerNotFound(t *testing.T) {
	repo := NewCachedSessionRepository(&stubSessionRepository{}, deadClient(), time.Minute, logger.InitializeTestZapLogger())

	_, err := repo.FindWithEvent(context.Background(), "session-missing")

	assert.ErrorIs(t, err, pg.ErrSessionNotFound)
}

// Needs a real Redis:
//
//	INTEGRATION_TEST=1 REDIS_ADDR=localhost:6379 go test ./internal/repository/redis/...
func TestCachedSessionRepositoryServesSecondReadFromCache(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("set INTEGRATION_TEST to run Redis integration tests")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	cli := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = cli.Close() })

	sessionID := uuid.NewString()
	ss := &models.Session{
		ID:      sessionID,
		EventID: "event-1",
		Status:  models.SessionStatusOnSale,
		Event:   &models.Event{ID: "event-1", Status: models.EventStatusApproved},
	}
	inner := &stubSessionRepository{ss: ss}
	repo := NewCachedSessionRepository(inner, cli, time.Minute, logger.InitializeTestZapLogger())

	ctx := context.Background()

	first, err := repo.FindWithEvent(ctx, sessionID)
	require.NoError(t, err)
	second, err := repo.FindWithEvent(ctx, sessionID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Event)
	assert.Equal(t, "event-1", second.Event.ID)
	assert.Equal(t, 1, inner.callCount(), "second read comes from the cache")
}
