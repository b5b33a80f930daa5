package kafka

const (
	// Consumed from the order service, at-least-once.
	TopicOrderUpdated = "order.updated"

	// Published after successful bookings for downstream seat-map
	// consumers, keyed by session id.
	TopicSeatsBooked = "seats.booked"
)

// Order status on which the consumer acts; anything else is a no-op.
const OrderStatusCompleted = "completed"
