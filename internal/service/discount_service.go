package service

import (
	"context"
	"errors"
	"fmt"

	pg "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

type DiscountService interface {
	// ApplyUsage records one use of a discount: current usage goes up
	// by one and the discounted amount is added to the running total.
	// A missing discount is logged and skipped so the enclosing
	// reconciliation never fails on it. This update is not part of the
	// same atomic unit as seat booking, and there is no conditional
	// max-usage clause; under heavy contention a near-exhausted
	// discount can overshoot its limit slightly.
	ApplyUsage(ctx context.Context, in ApplyUsageInput) error
}

type discountService struct {
	discountRepo pg.DiscountRepository
	l            logger.Logger
}

func NewDiscountService(discountRepo pg.DiscountRepository, l logger.Logger) DiscountService {
	return &discountService{
		discountRepo: discountRepo,
		l:            l,
	}
}

func (s *discountService) ApplyUsage(ctx context.Context, in ApplyUsageInput) error {
	d, err := s.discountRepo.FindByID(ctx, in.DiscountID)
	if err != nil {
		if errors.Is(err, pg.ErrDiscountNotFound) {
			s.l.Warnf(ctx, "Discount %s not found, skipping usage update", in.DiscountID)
			return nil
		}
		return fmt.Errorf("failed to load discount: %w", err)
	}

	if in.DiscountCode != "" && in.DiscountCode != d.Code {
		// Permissive reconciliation: the event's code is advisory.
		s.l.Warnf(ctx, "Discount code mismatch for %s: event says %q, stored is %q; proceeding",
			in.DiscountID, in.DiscountCode, d.Code)
	}

	amount := in.Amount
	if amount < 0 {
		amount = 0
	}

	if err := s.discountRepo.IncrementUsage(ctx, d.ID, amount); err != nil {
		if errors.Is(err, pg.ErrDiscountNotFound) {
			s.l.Warnf(ctx, "Discount %s disappeared before usage update, skipping", in.DiscountID)
			return nil
		}
		return fmt.Errorf("failed to update discount usage: %w", err)
	}

	s.l.Infof(ctx, "Discount usage applied for %s, amount %.2f", in.DiscountID, amount)

	return nil
}
