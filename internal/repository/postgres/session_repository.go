package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	// FindWithEvent returns the session joined with its event and the
	// event's tier set.
	FindWithEvent(ctx context.Context, sessionID string) (*models.Session, error)
}

type postgresSessionRepository struct {
	db *bun.DB
	l  logger.Logger
}

func NewPostgresSessionRepository(db *bun.DB, l logger.Logger) SessionRepository {
	return &postgresSessionRepository{
		db: db,
		l:  l,
	}
}

func (r *postgresSessionRepository) FindWithEvent(ctx context.Context, sessionID string) (*models.Session, error) {
	ss := new(models.Session)

	err := r.db.NewSelect().
		Model(ss).
		Relation("Event").
		Relation("Event.Tiers").
		Where("s.id = ?", sessionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		r.l.Errorf(ctx, "repository.postgres.session_repository.FindWithEvent: %v", err)
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return ss, nil
}
