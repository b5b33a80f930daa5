package consumer

import (
	"context"
	"sync"

	"github.com/IBM/sarama"

	kafka "github.com/Evently-Event-Management/ms-event-seating/internal/delivery/kafka"
	"github.com/Evently-Event-Management/ms-event-seating/internal/delivery/kafka/producer"
	"github.com/Evently-Event-Management/ms-event-seating/internal/service"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

// Consumer reconciles completed orders into the seat inventory and the
// discount usage ledger. It runs as one member of a consumer group;
// ordering across sessions is whatever the producer's partition keying
// provides.
type Consumer struct {
	consGr      sarama.ConsumerGroup
	seatSvc     service.SeatService
	discountSvc service.DiscountService
	prod        producer.Producer
	l           logger.Logger
	wg          sync.WaitGroup

	// ackOnError is the commit point policy: when true a message is
	// marked consumed even if its handler failed, so failing payloads
	// are logged and dropped rather than redelivered forever. There is
	// no dead-letter path, which means transient store failures are
	// discarded exactly like permanent ones.
	ackOnError bool
}

func NewConsumer(
	consGr sarama.ConsumerGroup,
	seatSvc service.SeatService,
	discountSvc service.DiscountService,
	prod producer.Producer,
	ackOnError bool,
	l logger.Logger,
) *Consumer {
	return &Consumer{
		consGr:      consGr,
		seatSvc:     seatSvc,
		discountSvc: discountSvc,
		prod:        prod,
		ackOnError:  ackOnError,
		l:           l,
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	switch msg.Topic {
	case kafka.TopicOrderUpdated:
		return c.HandleOrderUpdated(ctx, msg)
	default:
		c.l.Warnf(ctx, "Unknown topic %q, skipping", msg.Topic)
		return nil
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	topics := []string{kafka.TopicOrderUpdated}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			if err := c.consGr.Consume(ctx, topics, c); err != nil {
				c.l.Errorf(ctx, "delivery.kafka.consumer.consumer.Start: %v", err)
			}

			if ctx.Err() != nil {
				c.l.Infof(ctx, "delivery.kafka.consumer.consumer.Start: %v", ctx.Err())
				return
			}
		}
	}()

	// Handle errors
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.consGr.Errors() {
			c.l.Errorf(ctx, "delivery.kafka.consumer.consumer.Start: %v", err)
		}
	}()

	c.l.Infof(ctx, "Consumer is consuming topics: %v", topics)
	return nil
}

func (c *Consumer) Close() error {
	if err := c.consGr.Close(); err != nil {
		return err
	}

	c.wg.Wait()
	return nil
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session started")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	c.l.Debug(context.Background(), "Consumer group session ended")
	return nil
}

func (c *Consumer) ConsumeClaim(ss sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			if err := c.processMessage(ss.Context(), message); err != nil {
				c.l.Errorf(ss.Context(), "delivery.kafka.consumer.consumer.ConsumeClaim: topic %s offset %d: %v",
					message.Topic, message.Offset, err)

				if !c.ackOnError {
					continue
				}
			}

			ss.MarkMessage(message, "")

		case <-ss.Context().Done():
			return nil
		}
	}
}
