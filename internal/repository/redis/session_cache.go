package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	pg "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

// cachedSessionRepository is a read-through cache in front of the
// session+event join, for the hot gate/validation path. Only session
// and event metadata is cached; seat statuses always come from the
// seating-map store, so bookings need no invalidation here. Misses and
// cache errors fall back to the inner repository.
type cachedSessionRepository struct {
	inner pg.SessionRepository
	cli   *redis.Client
	ttl   time.Duration
	l     logger.Logger
}

func NewCachedSessionRepository(inner pg.SessionRepository, cli *redis.Client, ttl time.Duration, l logger.Logger) pg.SessionRepository {
	return &cachedSessionRepository{
		inner: inner,
		cli:   cli,
		ttl:   ttl,
		l:     l,
	}
}

func (r *cachedSessionRepository) FindWithEvent(ctx context.Context, sessionID string) (*models.Session, error) {
	key := r.sessionKey(sessionID)

	data, err := r.cli.Get(ctx, key).Bytes()
	if err == nil {
		var ss models.Session
		if err := json.Unmarshal(data, &ss); err == nil {
			return &ss, nil
		}
		// Corrupt entry; fall through to the source of truth.
		r.l.Warnf(ctx, "repository.redis.session_cache.FindWithEvent: dropping corrupt cache entry for %s", sessionID)
	} else if !errors.Is(err, redis.Nil) {
		r.l.Errorf(ctx, "repository.redis.session_cache.FindWithEvent: %v", err)
	}

	ss, err := r.inner.FindWithEvent(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ss); err == nil {
		if err := r.cli.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.l.Errorf(ctx, "repository.redis.session_cache.FindWithEvent: %v", err)
		}
	}

	return ss, nil
}

func (r *cachedSessionRepository) sessionKey(sessionID string) string {
	return fmt.Sprintf("event-seating:session:%s", sessionID)
}
