package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-booking/internal/audit"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherWrite(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)

	id := uint(42)
	at := time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC)

	err := p.Write(context.Background(), audit.Event{
		RestaurantID: 3,
		Action:       "reservation_created",
		Entity:       "reservation",
		EntityID:     &id,
		Metadata:     map[string]any{"table_id": 5},
		OccurredAt:   at,
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "3", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "reservation_created", string(msg.Headers[0].Value))

	var got ReservationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, uint(3), got.RestaurantID)
	require.NotNil(t, got.ReservationID)
	assert.Equal(t, id, *got.ReservationID)
	assert.True(t, at.Equal(got.OccurredAt))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherPropagatesWriteError(t *testing.T) {
	p := NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")})

	err := p.Write(context.Background(), audit.Event{RestaurantID: 1, Action: "x"})
	assert.EqualError(t, err, "broker down")
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "reservations")
	assert.Equal(t, "reservations", w.Topic)
	assert.Equal(t, kafka.RequireOne, w.RequiredAcks)
}
