package models

import (
	"time"

	"github.com/uptrace/bun"
)

type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusOnSale    SessionStatus = "ON_SALE"
	SessionStatusSoldOut   SessionStatus = "SOLD_OUT"
	SessionStatusClosed    SessionStatus = "CLOSED"
)

// Session is one sale window of an event. Its seat inventory lives in a
// private seating-map document keyed by the session id, captured from a
// layout template at creation time; later template edits never touch an
// in-flight session.
type Session struct {
	bun.BaseModel `bun:"table:event_sessions,alias:s"`

	ID             string        `bun:"id,pk" json:"id"`
	EventID        string        `bun:"event_id,notnull" json:"event_id"`
	StartTime      time.Time     `bun:"start_time,notnull" json:"start_time"`
	EndTime        time.Time     `bun:"end_time,notnull" json:"end_time"`
	SalesStartTime time.Time     `bun:"sales_start_time,nullzero" json:"sales_start_time"`
	Status         SessionStatus `bun:"status,notnull" json:"status"`
	CreatedAt      time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time     `bun:"updated_at,nullzero" json:"updated_at"`

	Event *Event `bun:"rel:belongs-to,join:event_id=id" json:"event,omitempty"`
}

func (s *Session) IsOnSale() bool {
	return s.Status == SessionStatusOnSale
}
