package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	mongoRepo "github.com/Evently-Event-Management/ms-event-seating/internal/repository/mongo"
	pg "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
	pkgErrors "github.com/Evently-Event-Management/ms-event-seating/pkg/errors"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

type PreOrderService interface {
	// ValidatePreOrder is the single pass/fail gate consulted before
	// order creation. Checks run in order and short-circuit on the
	// first failure; all of them are read-only.
	ValidatePreOrder(ctx context.Context, in PreOrderInput) error
}

type preOrderService struct {
	sessionRepo  pg.SessionRepository
	discountRepo pg.DiscountRepository
	mapRepo      mongoRepo.SeatingMapRepository
	l            logger.Logger
}

func NewPreOrderService(
	sessionRepo pg.SessionRepository,
	discountRepo pg.DiscountRepository,
	mapRepo mongoRepo.SeatingMapRepository,
	l logger.Logger,
) PreOrderService {
	return &preOrderService{
		sessionRepo:  sessionRepo,
		discountRepo: discountRepo,
		mapRepo:      mapRepo,
		l:            l,
	}
}

func (s *preOrderService) ValidatePreOrder(ctx context.Context, in PreOrderInput) error {
	// 1. Session and its event, one joined lookup.
	ss, err := s.sessionRepo.FindWithEvent(ctx, in.SessionID)
	if err != nil {
		if errors.Is(err, pg.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	if ss.Event == nil {
		return ErrEventNotFound
	}

	if !ss.Event.IsApproved() {
		return pkgErrors.NewValidationFailure("EVENT_NOT_APPROVED",
			fmt.Sprintf("event %s is not approved", ss.EventID))
	}

	// 2. Ownership: the candidate's declared event and organization must
	// both match what the session actually belongs to.
	if ss.EventID != in.EventID {
		return pkgErrors.NewValidationFailure("EVENT_MISMATCH",
			fmt.Sprintf("session %s does not belong to event %s", in.SessionID, in.EventID))
	}

	if ss.Event.OrganizationID != in.OrganizationID {
		return pkgErrors.NewValidationFailure("ORGANIZATION_MISMATCH",
			fmt.Sprintf("event %s does not belong to organization %s", ss.EventID, in.OrganizationID))
	}

	// 3. Sale window.
	if !ss.IsOnSale() {
		return pkgErrors.NewValidationFailure("SESSION_NOT_ON_SALE",
			fmt.Sprintf("session %s is not on sale", in.SessionID))
	}

	// 4. Discount, only when one is supplied.
	if in.DiscountID != "" {
		if err := s.validateDiscount(ctx, in.DiscountID, ss.EventID); err != nil {
			return err
		}
	}

	// 5. Seat availability: a single count of unavailable-or-unknown
	// seats among the requested ids.
	unavailable, err := s.mapRepo.CountUnavailableSeats(ctx, in.SessionID, in.SeatIDs)
	if err != nil {
		if errors.Is(err, mongoRepo.ErrSeatingMapNotFound) {
			return ErrSeatingMapNotFound
		}
		return fmt.Errorf("failed to count unavailable seats: %w", err)
	}

	if unavailable > 0 {
		return pkgErrors.NewValidationFailure("SEATS_UNAVAILABLE",
			fmt.Sprintf("%d of the requested seats are unavailable or unknown", unavailable))
	}

	s.l.Debugf(ctx, "Pre-order validation passed for session %s, %d seats", in.SessionID, len(in.SeatIDs))

	return nil
}

func (s *preOrderService) validateDiscount(ctx context.Context, discountID, eventID string) error {
	d, err := s.discountRepo.FindByID(ctx, discountID)
	if err != nil {
		if errors.Is(err, pg.ErrDiscountNotFound) {
			return ErrDiscountNotFound
		}
		return fmt.Errorf("failed to load discount: %w", err)
	}

	if d.EventID != eventID {
		return pkgErrors.NewValidationFailure("DISCOUNT_WRONG_EVENT",
			fmt.Sprintf("discount %s does not belong to event %s", discountID, eventID))
	}

	if !d.Active {
		return pkgErrors.NewValidationFailure("DISCOUNT_INACTIVE",
			fmt.Sprintf("discount %s is not active", discountID))
	}

	now := time.Now()
	if d.ActiveFrom != nil && now.Before(*d.ActiveFrom) {
		return pkgErrors.NewValidationFailure("DISCOUNT_NOT_YET_ACTIVE",
			fmt.Sprintf("discount %s is not active yet", discountID))
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return pkgErrors.NewValidationFailure("DISCOUNT_EXPIRED",
			fmt.Sprintf("discount %s has expired", discountID))
	}

	if d.UsageExhausted() {
		return pkgErrors.NewValidationFailure("DISCOUNT_USAGE_LIMIT_REACHED", "usage limit reached")
	}

	return nil
}
