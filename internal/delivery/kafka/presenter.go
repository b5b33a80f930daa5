package kafka

import "time"

// Events consumed from the Order Service

type OrderTicket struct {
	SeatID string `json:"seat_id"`
}

type OrderUpdatedEvent struct {
	OrderID        string        `json:"order_id"`
	SessionID      string        `json:"session_id"`
	Status         string        `json:"status"`
	DiscountID     string        `json:"discount_id,omitempty"`
	DiscountCode   string        `json:"discount_code,omitempty"`
	DiscountAmount float64       `json:"discount_amount,omitempty"`
	Tickets        []OrderTicket `json:"tickets"`
	Timestamp      time.Time     `json:"timestamp"`
}

// SeatIDs collects the seat ids referenced by the event's tickets.
func (e OrderUpdatedEvent) SeatIDs() []string {
	ids := make([]string, 0, len(e.Tickets))
	for _, t := range e.Tickets {
		if t.SeatID != "" {
			ids = append(ids, t.SeatID)
		}
	}
	return ids
}

// Events published by the Event Seating Service

type SeatsBookedEvent struct {
	SessionID string    `json:"session_id"`
	SeatIDs   []string  `json:"seat_ids"`
	Timestamp time.Time `json:"timestamp"`
}
