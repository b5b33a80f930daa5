package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Evently-Event-Management/ms-event-seating/internal/models"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

const seatingMapCollection = "session_seating_maps"

// ErrSeatingMapNotFound is returned when a session has no seating-map
// document.
var ErrSeatingMapNotFound = errors.New("seating map not found")

// ErrSeatingMapExists is returned when a session already has a
// seating-map document; the per-session copy is created exactly once.
var ErrSeatingMapExists = errors.New("seating map already exists for session")

type SeatingMapRepository interface {
	// CreateForSession inserts a session's private seating-map copy.
	CreateForSession(ctx context.Context, doc *models.SeatingMapDocument) error

	// FindBySessionID returns the full document for a session.
	FindBySessionID(ctx context.Context, sessionID string) (*models.SeatingMapDocument, error)

	// BookSeats transitions every seat in seatIDs that is currently
	// AVAILABLE to BOOKED, in one server-side conditional update, and
	// returns how many seats were actually transitioned.
	BookSeats(ctx context.Context, sessionID string, seatIDs []string) (int64, error)

	// CountUnavailableSeats returns how many of the requested seat ids
	// are either absent from the session's document or not AVAILABLE.
	CountUnavailableSeats(ctx context.Context, sessionID string, seatIDs []string) (int64, error)
}

type mongoSeatingMapRepository struct {
	coll *mongo.Collection
	l    logger.Logger
}

func NewMongoSeatingMapRepository(db *mongo.Database, l logger.Logger) SeatingMapRepository {
	return &mongoSeatingMapRepository{
		coll: db.Collection(seatingMapCollection),
		l:    l,
	}
}

func (r *mongoSeatingMapRepository) CreateForSession(ctx context.Context, doc *models.SeatingMapDocument) error {
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSeatingMapExists
		}

		r.l.Errorf(ctx, "repository.mongo.seating_map_repository.CreateForSession: %v", err)
		return fmt.Errorf("failed to insert seating map: %w", err)
	}

	r.l.Debugf(ctx, "Seating map created for session %s", doc.SessionID)

	return nil
}

func (r *mongoSeatingMapRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.SeatingMapDocument, error) {
	var doc models.SeatingMapDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSeatingMapNotFound
		}

		r.l.Errorf(ctx, "repository.mongo.seating_map_repository.FindBySessionID: %v", err)
		return nil, fmt.Errorf("failed to find seating map: %w", err)
	}

	return &doc, nil
}

// BookSeats expresses the booking as a single set-based conditional
// update executed by the store: "set status=BOOKED for every seat whose
// id is in seatIDs AND whose current status is AVAILABLE". A seat is won
// at the instant it flips; a racing caller sees zero qualifying seats
// for it. The pre-image returned by FindOneAndUpdate is read atomically
// with the update, so the number of requested seats still AVAILABLE in
// it is exactly the number this call transitioned.
func (r *mongoSeatingMapRepository) BookSeats(ctx context.Context, sessionID string, seatIDs []string) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}

	update := bson.M{"$set": bson.M{
		"layout.blocks.$[].rows.$[].seats.$[gridSeat].status": models.SeatStatusBooked,
		"layout.blocks.$[].seats.$[directSeat].status":        models.SeatStatusBooked,
	}}

	arrayFilters := options.ArrayFilters{Filters: []interface{}{
		bson.M{"gridSeat.id": bson.M{"$in": seatIDs}, "gridSeat.status": models.SeatStatusAvailable},
		bson.M{"directSeat.id": bson.M{"$in": seatIDs}, "directSeat.status": models.SeatStatusAvailable},
	}}

	opts := options.FindOneAndUpdate().
		SetArrayFilters(arrayFilters).
		SetReturnDocument(options.Before)

	var before models.SeatingMapDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": sessionID}, update, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrSeatingMapNotFound
		}

		r.l.Errorf(ctx, "repository.mongo.seating_map_repository.BookSeats: %v", err)
		return 0, fmt.Errorf("failed to book seats: %w", err)
	}

	transitioned := countAvailable(&before, seatIDs)

	r.l.Debugf(ctx, "Session %s: %d of %d requested seats transitioned to BOOKED",
		sessionID, transitioned, len(seatIDs))

	return transitioned, nil
}

func (r *mongoSeatingMapRepository) CountUnavailableSeats(ctx context.Context, sessionID string, seatIDs []string) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}

	doc, err := r.FindBySessionID(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	available := countAvailable(doc, seatIDs)

	return int64(len(dedupe(seatIDs))) - available, nil
}

func countAvailable(doc *models.SeatingMapDocument, seatIDs []string) int64 {
	var n int64
	for _, seat := range doc.FindSeats(seatIDs) {
		if seat.Status == models.SeatStatusAvailable {
			n++
		}
	}
	return n
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
