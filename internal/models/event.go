package models

import (
	"time"

	"github.com/uptrace/bun"
)

type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDING"
	EventStatusApproved  EventStatus = "APPROVED"
	EventStatusRejected  EventStatus = "REJECTED"
	EventStatusCompleted EventStatus = "COMPLETED"
)

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID             string      `bun:"id,pk" json:"id"`
	OrganizationID string      `bun:"organization_id,notnull" json:"organization_id"`
	Title          string      `bun:"title,notnull" json:"title"`
	Status         EventStatus `bun:"status,notnull" json:"status"`
	CreatedAt      time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time   `bun:"updated_at,nullzero" json:"updated_at"`

	Tiers []*Tier `bun:"rel:has-many,join:id=event_id" json:"tiers,omitempty"`
}

func (e *Event) IsApproved() bool {
	return e.Status == EventStatusApproved
}

// TierByID resolves a tier id against the event's tier set.
func (e *Event) TierByID(id string) (*Tier, bool) {
	for _, t := range e.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Tier is a named pricing category for seats within one event.
type Tier struct {
	bun.BaseModel `bun:"table:tiers,alias:t"`

	ID      string  `bun:"id,pk" json:"id"`
	EventID string  `bun:"event_id,notnull" json:"event_id"`
	Name    string  `bun:"name,notnull" json:"name"`
	Price   float64 `bun:"price,notnull" json:"price"`
	Color   string  `bun:"color" json:"color"`
}
