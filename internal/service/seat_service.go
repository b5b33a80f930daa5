package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	mongoRepo "github.com/Evently-Event-Management/ms-event-seating/internal/repository/mongo"
	pg "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
	pkgErrors "github.com/Evently-Event-Management/ms-event-seating/pkg/errors"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

type SeatService interface {
	// ValidateAndGetSeatDetails checks that every requested seat exists
	// and is AVAILABLE in the session's seating map and returns its
	// label and resolved tier. All-or-nothing: one unavailable or
	// unknown seat fails the whole call. Read-only.
	ValidateAndGetSeatDetails(ctx context.Context, sessionID string, seatIDs []string) ([]SeatDetails, error)

	// BookSeats transitions the requested seats that are currently
	// AVAILABLE to BOOKED and returns how many actually transitioned.
	// A count below the requested number is partial success, not an
	// error.
	BookSeats(ctx context.Context, sessionID string, seatIDs []string) (int64, error)
}

type seatService struct {
	sessionRepo pg.SessionRepository
	mapRepo     mongoRepo.SeatingMapRepository
	l           logger.Logger
}

func NewSeatService(
	sessionRepo pg.SessionRepository,
	mapRepo mongoRepo.SeatingMapRepository,
	l logger.Logger,
) SeatService {
	return &seatService{
		sessionRepo: sessionRepo,
		mapRepo:     mapRepo,
		l:           l,
	}
}

func (s *seatService) ValidateAndGetSeatDetails(ctx context.Context, sessionID string, seatIDs []string) ([]SeatDetails, error) {
	ids := dedupeIDs(seatIDs)
	if len(ids) == 0 {
		return nil, ErrNoSeatsRequested
	}

	ss, err := s.sessionRepo.FindWithEvent(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pg.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if !ss.IsOnSale() {
		return nil, pkgErrors.NewValidationFailure("SESSION_NOT_ON_SALE",
			fmt.Sprintf("session %s is not on sale", sessionID))
	}

	if ss.Event == nil {
		return nil, ErrEventNotFound
	}

	doc, err := s.mapRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, mongoRepo.ErrSeatingMapNotFound) {
			return nil, ErrSeatingMapNotFound
		}
		return nil, fmt.Errorf("failed to load seating map: %w", err)
	}

	// One walk over the whole document collects every requested seat.
	found := doc.FindSeats(ids)

	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, pkgErrors.NewNotFound("SEATS_NOT_FOUND",
			fmt.Sprintf("seats not found in session %s: %s", sessionID, strings.Join(missing, ", ")))
	}

	details := make([]SeatDetails, 0, len(ids))
	for _, id := range ids {
		seat := found[id]

		if seat.Status != models.SeatStatusAvailable {
			return nil, pkgErrors.NewBadRequest("SEAT_NOT_AVAILABLE",
				fmt.Sprintf("seat %s is not available, current status is %s", seat.ID, seat.Status))
		}

		tier, ok := ss.Event.TierByID(seat.TierID)
		if !ok {
			return nil, pkgErrors.NewNotFound("TIER_NOT_FOUND",
				fmt.Sprintf("tier %s of seat %s not found for event %s", seat.TierID, seat.ID, ss.EventID))
		}

		details = append(details, SeatDetails{
			SeatID: seat.ID,
			Label:  seat.Label,
			Tier: TierDetails{
				ID:    tier.ID,
				Name:  tier.Name,
				Price: tier.Price,
				Color: tier.Color,
			},
		})
	}

	return details, nil
}

func (s *seatService) BookSeats(ctx context.Context, sessionID string, seatIDs []string) (int64, error) {
	ids := dedupeIDs(seatIDs)
	if len(ids) == 0 {
		return 0, nil
	}

	transitioned, err := s.mapRepo.BookSeats(ctx, sessionID, ids)
	if err != nil {
		if errors.Is(err, mongoRepo.ErrSeatingMapNotFound) {
			return 0, ErrSeatingMapNotFound
		}
		return 0, fmt.Errorf("failed to book seats: %w", err)
	}

	s.l.Infof(ctx, "Booked %d of %d requested seats for session %s", transitioned, len(ids), sessionID)

	return transitioned, nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
