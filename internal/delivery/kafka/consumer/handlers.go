package consumer

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"

	kafka "github.com/Evently-Event-Management/ms-event-seating/internal/delivery/kafka"
	"github.com/Evently-Event-Management/ms-event-seating/internal/service"
)

// HandleOrderUpdated reconciles one order.updated event. Only the
// "completed" status has an effect: the order's seats are booked and,
// when a discount was used, its usage is recorded. Seat booking is
// idempotent per seat, but the ledger update is not idempotent per
// order id: a redelivered completed event re-increments the usage
// counter. Booking and the ledger update are also not one atomic unit;
// either can succeed while the other fails.
func (c *Consumer) HandleOrderUpdated(ctx context.Context, message *sarama.ConsumerMessage) error {
	var e kafka.OrderUpdatedEvent
	if err := json.Unmarshal(message.Value, &e); err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleOrderUpdated: %v", err)
		return err
	}

	if e.Status != kafka.OrderStatusCompleted {
		c.l.Debugf(ctx, "Ignoring order %s with status %q", e.OrderID, e.Status)
		return nil
	}

	seatIDs := e.SeatIDs()
	if len(seatIDs) == 0 {
		c.l.Warnf(ctx, "Completed order %s carries no tickets, nothing to book", e.OrderID)
		return nil
	}

	transitioned, err := c.seatSvc.BookSeats(ctx, e.SessionID, seatIDs)
	if err != nil {
		c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleOrderUpdated: %v", err)
		return err
	}

	if transitioned < int64(len(seatIDs)) {
		// Some seats were already off the market. The transitions that
		// did happen stand; this is an anomaly to investigate, not a
		// failure.
		c.l.Warnf(ctx, "Order %s: only %d of %d seats transitioned for session %s",
			e.OrderID, transitioned, len(seatIDs), e.SessionID)
	}

	if transitioned > 0 && c.prod != nil {
		// The event carries every requested seat id, not just the ones
		// that transitioned here: a seat that did not transition was
		// already BOOKED, so "these seats are booked" holds for the
		// full set and downstream marking stays idempotent.
		if err := c.prod.PublishSeatsBooked(ctx, kafka.SeatsBookedEvent{
			SessionID: e.SessionID,
			SeatIDs:   seatIDs,
		}); err != nil {
			// Log only; the booking already happened.
			c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleOrderUpdated: %v", err)
		}
	}

	if e.DiscountID != "" {
		if err := c.discountSvc.ApplyUsage(ctx, service.ApplyUsageInput{
			DiscountID:   e.DiscountID,
			DiscountCode: e.DiscountCode,
			Amount:       e.DiscountAmount,
		}); err != nil {
			c.l.Errorf(ctx, "delivery.kafka.consumer.handlers.HandleOrderUpdated: %v", err)
			return err
		}
	}

	return nil
}
