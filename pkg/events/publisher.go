// Package events publishes booking lifecycle messages to Kafka. Publishing is
// best effort: a booking that failed to announce itself is still a booking.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pawsteps/pkg/logger"
	"pawsteps/pkg/model"

	"github.com/segmentio/kafka-go"
)

// BookingCreated is the wire payload for the booking.created topic.
type BookingCreated struct {
	BookingID    string    `json:"booking_id"`
	OwnerID      string    `json:"owner_id"`
	Service      string    `json:"service"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	DurationMins int       `json:"duration_mins"`
	Pets         int       `json:"pets"`
	CreatedAt    time.Time `json:"created_at"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, booking *model.Booking) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
	closed bool
	mu     sync.Mutex
}

func NewKafkaPublisher(brokers []string, topic string, log *logger.Logger) (Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // Hash by key so one owner's events stay ordered
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: 100 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error(fmt.Sprintf("kafka: "+msg, args...))
		}),
	}

	return &kafkaPublisher{
		writer: writer,
		log:    log,
	}, nil
}

func (p *kafkaPublisher) PublishBookingCreated(ctx context.Context, booking *model.Booking) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("publisher is closed")
	}
	p.mu.Unlock()

	payload, err := json.Marshal(BookingCreated{
		BookingID:    booking.ID,
		OwnerID:      booking.OwnerID,
		Service:      booking.Service,
		Date:         booking.Date,
		Time:         booking.Time,
		DurationMins: booking.DurationMins,
		Pets:         booking.Pets,
		CreatedAt:    booking.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.OwnerID),
		Value: payload,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.log.Debug("Booking event published",
		"booking_id", booking.ID,
		"owner_id", booking.OwnerID,
	)
	return nil
}

func (p *kafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
