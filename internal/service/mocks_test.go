package service

import (
	"context"
	"sync"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	mongoRepo "github.com/Evently-Event-Management/ms-event-seating/internal/repository/mongo"
	pg "github.com/Evently-Event-Management/ms-event-seating/internal/repository/postgres"
)

type mockSessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	err      error
	calls    int
}

func (m *mockSessionRepository) FindWithEvent(_ context.Context, sessionID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	ss, ok := m.sessions[sessionID]
	if !ok {
		return nil, pg.ErrSessionNotFound
	}
	return ss, nil
}

type usageRecord struct {
	discountID string
	amount     float64
}

type mockDiscountRepository struct {
	mu        sync.Mutex
	discounts map[string]*models.Discount
	findErr   error
	incErr    error
	usages    []usageRecord
}

func (m *mockDiscountRepository) FindByID(_ context.Context, discountID string) (*models.Discount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}
	d, ok := m.discounts[discountID]
	if !ok {
		return nil, pg.ErrDiscountNotFound
	}
	return d, nil
}

func (m *mockDiscountRepository) IncrementUsage(_ context.Context, discountID string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.incErr != nil {
		return m.incErr
	}
	if _, ok := m.discounts[discountID]; !ok {
		return pg.ErrDiscountNotFound
	}
	m.usages = append(m.usages, usageRecord{discountID: discountID, amount: amount})
	return nil
}

func (m *mockDiscountRepository) recordedUsages() []usageRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]usageRecord, len(m.usages))
	copy(out, m.usages)
	return out
}

// mockSeatingMapRepository keeps whole documents in memory and applies
// the same "flip every requested AVAILABLE seat" semantics as the store.
type mockSeatingMapRepository struct {
	mu    sync.Mutex
	docs  map[string]*models.SeatingMapDocument
	err   error
	books int
}

func (m *mockSeatingMapRepository) CreateForSession(_ context.Context, doc *models.SeatingMapDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	if _, ok := m.docs[doc.SessionID]; ok {
		return mongoRepo.ErrSeatingMapExists
	}
	if m.docs == nil {
		m.docs = map[string]*models.SeatingMapDocument{}
	}
	m.docs[doc.SessionID] = doc
	return nil
}

func (m *mockSeatingMapRepository) FindBySessionID(_ context.Context, sessionID string) (*models.SeatingMapDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.docs[sessionID]
	if !ok {
		return nil, mongoRepo.ErrSeatingMapNotFound
	}
	return doc, nil
}

func (m *mockSeatingMapRepository) BookSeats(_ context.Context, sessionID string, seatIDs []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.books++
	if m.err != nil {
		return 0, m.err
	}
	doc, ok := m.docs[sessionID]
	if !ok {
		return 0, mongoRepo.ErrSeatingMapNotFound
	}

	wanted := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = struct{}{}
	}

	var transitioned int64
	doc.EachSeat(func(seat *models.Seat) {
		if _, ok := wanted[seat.ID]; !ok {
			return
		}
		if seat.Status == models.SeatStatusAvailable {
			seat.Status = models.SeatStatusBooked
			transitioned++
		}
	})

	return transitioned, nil
}

func (m *mockSeatingMapRepository) CountUnavailableSeats(_ context.Context, sessionID string, seatIDs []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return 0, m.err
	}
	doc, ok := m.docs[sessionID]
	if !ok {
		return 0, mongoRepo.ErrSeatingMapNotFound
	}

	wanted := make(map[string]struct{}, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = struct{}{}
	}

	unavailable := int64(len(wanted))
	doc.EachSeat(func(seat *models.Seat) {
		if _, ok := wanted[seat.ID]; ok && seat.Status == models.SeatStatusAvailable {
			unavailable--
		}
	})

	return unavailable, nil
}
