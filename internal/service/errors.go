package service

import (
	pkgErrors "github.com/Evently-Event-Management/ms-event-seating/pkg/errors"
)

var (
	ErrSessionNotFound    = pkgErrors.NewNotFound("SESSION_NOT_FOUND", "session not found")
	ErrEventNotFound      = pkgErrors.NewNotFound("EVENT_NOT_FOUND", "event not found")
	ErrSeatingMapNotFound = pkgErrors.NewNotFound("SEATING_MAP_NOT_FOUND", "seating map not found for session")
	ErrDiscountNotFound   = pkgErrors.NewNotFound("DISCOUNT_NOT_FOUND", "discount not found")
	ErrNoSeatsRequested   = pkgErrors.NewBadRequest("NO_SEATS_REQUESTED", "at least one seat must be requested")
)
