package models

import "github.com/google/uuid"

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "AVAILABLE"
	SeatStatusReserved  SeatStatus = "RESERVED"
	SeatStatusBooked    SeatStatus = "BOOKED"
)

type BlockType string

const (
	BlockTypeSeatedGrid       BlockType = "seated_grid"
	BlockTypeStandingCapacity BlockType = "standing_capacity"
)

// SeatingMapDocument is the per-session seat inventory document. The
// _id is the session id; there is exactly one document per session and
// it is mutated only through the conditional booking update.
type SeatingMapDocument struct {
	SessionID string `bson:"_id" json:"session_id"`
	Layout    Layout `bson:"layout" json:"layout"`
}

type Layout struct {
	Name   string  `bson:"name" json:"name"`
	Blocks []Block `bson:"blocks" json:"blocks"`
}

// Block groups seats either into rows (seated grids) or directly
// (standing capacity). Rows and Seats are both always present, empty
// when unused, so the two arrayFilters update paths always resolve.
type Block struct {
	ID    string    `bson:"id" json:"id"`
	Name  string    `bson:"name" json:"name"`
	Type  BlockType `bson:"type" json:"type"`
	Rows  []Row     `bson:"rows" json:"rows"`
	Seats []Seat    `bson:"seats" json:"seats"`
}

type Row struct {
	ID    string `bson:"id" json:"id"`
	Label string `bson:"label" json:"label"`
	Seats []Seat `bson:"seats" json:"seats"`
}

// Seat ids are unique across the whole document, not just within a row.
type Seat struct {
	ID     string     `bson:"id" json:"id"`
	Label  string     `bson:"label" json:"label"`
	TierID string     `bson:"tier_id" json:"tier_id"`
	Status SeatStatus `bson:"status" json:"status"`
}

// EachSeat walks every seat of the document, rows first, then a
// block's direct seats.
func (d *SeatingMapDocument) EachSeat(fn func(seat *Seat)) {
	for bi := range d.Layout.Blocks {
		block := &d.Layout.Blocks[bi]
		for ri := range block.Rows {
			row := &block.Rows[ri]
			for si := range row.Seats {
				fn(&row.Seats[si])
			}
		}
		for si := range block.Seats {
			fn(&block.Seats[si])
		}
	}
}

// FindSeats collects the seats whose id is in ids. The returned map
// holds one entry per matched id.
func (d *SeatingMapDocument) FindSeats(ids []string) map[string]Seat {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	found := make(map[string]Seat, len(ids))
	d.EachSeat(func(seat *Seat) {
		if _, ok := wanted[seat.ID]; ok {
			found[seat.ID] = *seat
		}
	})

	return found
}

// CloneForSession copies a layout template into a session's private
// seating-map document. Blocks, rows and seats get fresh ids so that
// sessions never share seat identity; all seats start AVAILABLE.
func CloneForSession(sessionID string, layout Layout) *SeatingMapDocument {
	doc := &SeatingMapDocument{
		SessionID: sessionID,
		Layout: Layout{
			Name:   layout.Name,
			Blocks: make([]Block, 0, len(layout.Blocks)),
		},
	}

	for _, block := range layout.Blocks {
		cloned := Block{
			ID:    uuid.NewString(),
			Name:  block.Name,
			Type:  block.Type,
			Rows:  make([]Row, 0, len(block.Rows)),
			Seats: make([]Seat, 0, len(block.Seats)),
		}
		for _, row := range block.Rows {
			clonedRow := Row{
				ID:    uuid.NewString(),
				Label: row.Label,
				Seats: make([]Seat, 0, len(row.Seats)),
			}
			for _, seat := range row.Seats {
				clonedRow.Seats = append(clonedRow.Seats, cloneSeat(seat))
			}
			cloned.Rows = append(cloned.Rows, clonedRow)
		}
		for _, seat := range block.Seats {
			cloned.Seats = append(cloned.Seats, cloneSeat(seat))
		}
		doc.Layout.Blocks = append(doc.Layout.Blocks, cloned)
	}

	return doc
}

func cloneSeat(seat Seat) Seat {
	return Seat{
		ID:     uuid.NewString(),
		Label:  seat.Label,
		TierID: seat.TierID,
		Status: SeatStatusAvailable,
	}
}
