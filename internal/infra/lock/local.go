package lock

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
)

// Local serializes holders of the same key inside one process. A waiter gives up
// after Wait (when positive) or when ctx is done, whichever comes first.
type Local struct {
	Wait time.Duration

	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocal(wait time.Duration) *Local {
	return &Local{Wait: wait, slots: make(map[string]chan struct{})}
}

func (l *Local) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)

	if l.Wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Wait)
		defer cancel()
	}

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, domain.ErrBookingBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}

var _ domain.DayLocker = (*Local)(nil)
