package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	kafka "github.com/Evently-Event-Management/ms-event-seating/internal/delivery/kafka"
	"github.com/Evently-Event-Management/ms-event-seating/pkg/logger"
)

type Producer interface {
	PublishSeatsBooked(ctx context.Context, event kafka.SeatsBookedEvent) error
	Close() error
}

type implProducer struct {
	l    logger.Logger
	prod sarama.SyncProducer
}

func NewProducer(prod sarama.SyncProducer, l logger.Logger) Producer {
	return &implProducer{
		l:    l,
		prod: prod,
	}
}

func (p *implProducer) PublishSeatsBooked(ctx context.Context, event kafka.SeatsBookedEvent) error {
	event.Timestamp = time.Now()
	val, err := json.Marshal(event)
	if err != nil {
		p.l.Errorf(ctx, "delivery.kafka.producer.producer.PublishSeatsBooked: %v", err)
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: kafka.TopicSeatsBooked,
		Key:   sarama.StringEncoder(event.SessionID), // Partition by session_id for per-session ordering
		Value: sarama.ByteEncoder(val),
		Headers: []sarama.RecordHeader{
			{
				Key:   []byte("timestamp"),
				Value: []byte(time.Now().Format(time.RFC3339)),
			},
		},
	}

	_, _, err = p.prod.SendMessage(msg)
	return err
}

func (p *implProducer) Close() error {
	if err := p.prod.Close(); err != nil {
		return err
	}

	return nil
}
