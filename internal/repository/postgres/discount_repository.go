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

var ErrDiscountNotFound = errors.New("discount not found")

type DiscountRepository interface {
	FindByID(ctx context.Context, discountID string) (*models.Discount, error)

	// IncrementUsage bumps current_usage by one and adds amount to
	// discounted_total (a nil prior total counts as zero). A
	// non-positive amount still increments usage without touching the
	// total. The whole mutation is one UPDATE statement, so concurrent
	// increments never lose updates; it deliberately carries no
	// current_usage < max_usage guard (see the gate for the check).
	IncrementUsage(ctx context.Context, discountID string, amount float64) error
}

type postgresDiscountRepository struct {
	db *bun.DB
	l  logger.Logger
}

func NewPostgresDiscountRepository(db *bun.DB, l logger.Logger) DiscountRepository {
	return &postgresDiscountRepository{
		db: db,
		l:  l,
	}
}

func (r *postgresDiscountRepository) FindByID(ctx context.Context, discountID string) (*models.Discount, error) {
	d := new(models.Discount)

	err := r.db.NewSelect().
		Model(d).
		Where("d.id = ?", discountID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiscountNotFound
		}

		r.l.Errorf(ctx, "repository.postgres.discount_repository.FindByID: %v", err)
		return nil, fmt.Errorf("failed to find discount: %w", err)
	}

	return d, nil
}

func (r *postgresDiscountRepository) IncrementUsage(ctx context.Context, discountID string, amount float64) error {
	q := r.db.NewUpdate().
		Model((*models.Discount)(nil)).
		Set("current_usage = current_usage + 1").
		Where("id = ?", discountID)

	if amount > 0 {
		q = q.Set("discounted_total = COALESCE(discounted_total, 0) + ?", amount)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		r.l.Errorf(ctx, "repository.postgres.discount_repository.IncrementUsage: %v", err)
		return fmt.Errorf("failed to increment discount usage: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}

	if affected == 0 {
		return ErrDiscountNotFound
	}

	r.l.Debugf(ctx, "Discount %s usage incremented, amount %.2f", discountID, amount)

	return nil
}
