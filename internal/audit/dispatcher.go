package audit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

type Event struct {
	RestaurantID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *uint
	Metadata     any
	OccurredAt   time.Time
}

// Sink receives every dispatched event. A failing sink is logged and skipped.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to its sinks from a single background worker, so
// the request path never waits on audit storage. A nil *Dispatcher drops events.
type Dispatcher struct {
	sinks []Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := s.Write(ctx, ev)
			cancel()

			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"action":    ev.Action,
					"entity":    ev.Entity,
					"entity_id": ev.EntityID,
				}).Warn("audit sink failed")
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// never block the API on audit
		logrus.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones reach the sinks.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
