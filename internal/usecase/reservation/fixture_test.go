package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/table-booking/internal/audit"
	"github.com/BruksfildServices01/table-booking/internal/infra/lock"
	"github.com/BruksfildServices01/table-booking/internal/infra/repository"
	"github.com/BruksfildServices01/table-booking/internal/infra/token"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

const christmas = "2024-12-25" // a Wednesday

type recordingSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *recordingSink) Write(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, ev.Action)
	return nil
}

type fixture struct {
	repo       *repository.MemoryRepository
	restaurant models.Restaurant
	tables     map[int]models.Table // by number

	sink   *recordingSink
	audit  *audit.Dispatcher
	locker *lock.Local

	mu  sync.Mutex
	now time.Time

	availability *Availability
	create       *CreateReservation
	update       *UpdateReservation
	cancel       *CancelReservation
	transition   *TransitionReservation
	get          *GetReservation
	list         *ListReservationsByDate
}

// newFixture builds a restaurant with tables 1 and 2 (two seats), 3 (four) and
// 4 (six), the default weekly schedule and a clock frozen on 2024-12-20 10:00.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := repository.NewMemoryRepository()
	restaurant := repo.Seed(models.Restaurant{
		Name:                 "Test Bistro",
		Timezone:             "Europe/Paris",
		IsActive:             true,
		BufferMinutes:        30,
		PaymentThreshold:     6,
		MinimumDepositAmount: 15,
	}, []models.Table{
		{Number: 1, Capacity: 2, IsActive: true},
		{Number: 2, Capacity: 2, IsActive: true},
		{Number: 3, Capacity: 4, IsActive: true},
		{Number: 4, Capacity: 6, IsActive: true},
		{Number: 5, Capacity: 8, IsActive: false},
	}, nil)

	all, err := repo.FindActiveTables(context.Background(), restaurant.ID)
	require.NoError(t, err)

	f := &fixture{
		repo:       repo,
		restaurant: restaurant,
		tables:     make(map[int]models.Table),
		sink:       &recordingSink{},
		now:        time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC),
	}
	for _, tb := range all {
		f.tables[tb.Number] = tb
	}

	f.audit = audit.NewDispatcher(f.sink)
	t.Cleanup(f.audit.Close)

	locker := lock.NewLocal(5 * time.Second)
	f.locker = locker

	f.availability = NewAvailability(repo)
	f.create = NewCreateReservation(repo, locker, token.NewUUIDGenerator(), f.audit)
	f.update = NewUpdateReservation(repo, locker, f.audit)
	f.cancel = NewCancelReservation(repo, locker, f.audit)
	f.transition = NewTransitionReservation(repo, f.audit)
	f.get = NewGetReservation(repo)
	f.list = NewListReservationsByDate(repo)

	f.create.now = f.clock
	f.update.now = f.clock
	f.cancel.now = f.clock
	f.transition.now = f.clock
	f.get.now = f.clock

	return f
}

func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fixture) book(t *testing.T, clock string, party int) *models.Reservation {
	t.Helper()

	r, err := f.create.Execute(context.Background(), CreateReservationInput{
		ClientName:  "Guest",
		ClientPhone: "+33 6 00 00 00 00",
		Date:        christmas,
		Time:        clock,
		PartySize:   party,
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) tableNumber(t *testing.T, r *models.Reservation) int {
	t.Helper()
	require.NotNil(t, r.TableID)
	for n, tb := range f.tables {
		if tb.ID == *r.TableID {
			return n
		}
	}
	t.Fatalf("unknown table id %d", *r.TableID)
	return 0
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func uintPtr(v uint) *uint { return &v }
