package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/BruksfildServices01/table-booking/internal/audit"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReservationEvent is the payload published for every audited reservation change.
type ReservationEvent struct {
	RestaurantID  uint      `json:"restaurant_id"`
	ReservationID *uint     `json:"reservation_id,omitempty"`
	UserID        *uint     `json:"user_id,omitempty"`
	Action        string    `json:"action"`
	Entity        string    `json:"entity"`
	Metadata      any       `json:"metadata,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Write publishes ev keyed by restaurant, so one restaurant's events stay ordered
// within a partition.
func (p *KafkaPublisher) Write(ctx context.Context, ev audit.Event) error {
	payload, err := json.Marshal(ReservationEvent{
		RestaurantID:  ev.RestaurantID,
		ReservationID: ev.EntityID,
		UserID:        ev.UserID,
		Action:        ev.Action,
		Entity:        ev.Entity,
		Metadata:      ev.Metadata,
		OccurredAt:    ev.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.RestaurantID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "action", Value: []byte(ev.Action)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}

var _ audit.Sink = (*KafkaPublisher)(nil)
