package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/httperr"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

func TestUpdateKeepsOwnTableWhenShifting(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "19:00", 2)

	// 19:30 overlaps the reservation's own 19:00 booking, which must not count
	got, err := f.update.Execute(context.Background(), UpdateReservationInput{
		Locator: Locator{Token: *r.ManagementToken},
		Time:    strPtr("19:30"),
	})
	require.NoError(t, err)

	assert.Equal(t, "19:30", got.Time)
	assert.Equal(t, 1, f.tableNumber(t, got))
}

func TestUpdateReassignsTableWhenCurrentOneIsTaken(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "19:00", 2)
	b := f.book(t, "20:30", 2)
	require.Equal(t, 1, f.tableNumber(t, a))
	require.Equal(t, 1, f.tableNumber(t, b))

	got, err := f.update.Execute(context.Background(), UpdateReservationInput{
		Locator: Locator{Token: *a.ManagementToken},
		Time:    strPtr("20:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, f.tableNumber(t, got))
	assertNoDoubleBooking(t, f)
}

func TestUpdatePartySizeRepricesAndResizes(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "19:00", 2)

	got, err := f.update.Execute(context.Background(), UpdateReservationInput{
		Locator:   Locator{Token: *r.ManagementToken},
		PartySize: intPtr(6),
	})
	require.NoError(t, err)

	assert.Equal(t, 6, got.PartySize)
	assert.Equal(t, 120, got.DurationMinutes)
	assert.Equal(t, 4, f.tableNumber(t, got))
	assert.True(t, got.RequiresPayment)
	assert.Equal(t, 15.0, got.DepositAmount)
	assert.Equal(t, string(domain.PaymentPending), got.PaymentStatus)
}

func TestUpdateSlotUnavailableLeavesReservationUntouched(t *testing.T) {
	f := newFixture(t)
	f.book(t, "19:00", 6)
	r := f.book(t, "19:00", 2)

	_, err := f.update.Execute(context.Background(), UpdateReservationInput{
		Locator:   Locator{Token: *r.ManagementToken},
		PartySize: intPtr(6),
		Notes:     strPtr("birthday"),
	})
	assert.ErrorIs(t, err, domain.ErrSlotUnavailable)

	stored, err := f.get.Execute(context.Background(), Locator{Token: *r.ManagementToken})
	require.NoError(t, err)
	assert.Equal(t, 2, stored.PartySize)
	assert.Empty(t, stored.Notes)
}

func TestUpdateContactFieldsOnly(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "12:00", 2)

	got, err := f.update.Execute(context.Background(), UpdateReservationInput{
		Locator:         Locator{Token: *r.ManagementToken},
		ClientName:      strPtr("Jean Dupont"),
		SpecialRequests: strPtr("window seat"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jean Dupont", got.ClientName)
	assert.Equal(t, "window seat", got.SpecialRequests)
	assert.Equal(t, "12:00", got.Time)
	assert.Equal(t, *r.TableID, *got.TableID)
}

func TestUpdateTerminalReservationIsRejected(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "12:00", 2)

	_, err := f.cancel.Execute(context.Background(), CancelReservationInput{
		Locator: Locator{Token: *r.ManagementToken},
	})
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), UpdateReservationInput{
		Locator: Locator{Token: *r.ManagementToken},
		Time:    strPtr("13:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestConcurrentUpdatesNeverDoubleBook(t *testing.T) {
	f := newFixture(t)

	// four parties of two at lunch, each on its own table
	var tokens []string
	for i := 0; i < 4; i++ {
		r := f.book(t, "12:00", 2)
		tokens = append(tokens, *r.ManagementToken)
	}
	// the four-seater is taken for the evening
	f.book(t, "19:00", 4)

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		ok          int
		unavailable int
	)

	// everyone tries to grow to four people at 19:30; only the six-seater is left
	for _, tok := range tokens {
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			_, err := f.update.Execute(context.Background(), UpdateReservationInput{
				Locator:   Locator{Token: tok},
				Time:      strPtr("19:30"),
				PartySize: intPtr(4),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsBusiness(err, domain.CodeSlotUnavailable):
				unavailable++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(tok)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 3, unavailable)
	assertNoDoubleBooking(t, f)
}

// stallingRepo parks the first unit of work that reads a reservation until
// release is closed, so another writer can be raced against it.
type stallingRepo struct {
	domain.Repository
	once    sync.Once
	reached chan struct{}
	release chan struct{}
}

func newStallingRepo(inner domain.Repository) *stallingRepo {
	return &stallingRepo{
		Repository: inner,
		reached:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (s *stallingRepo) WithinDay(
	ctx context.Context,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {
	return s.Repository.WithinDay(ctx, restaurantID, date, func(tx domain.Repository) error {
		return fn(&stallingTx{Repository: tx, s: s})
	})
}

type stallingTx struct {
	domain.Repository
	s *stallingRepo
}

func (t *stallingTx) WithinDay(
	ctx context.Context,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {
	return t.Repository.WithinDay(ctx, restaurantID, date, func(tx domain.Repository) error {
		return fn(&stallingTx{Repository: tx, s: t.s})
	})
}

func (t *stallingTx) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	r, err := t.Repository.GetReservation(ctx, id)
	t.s.once.Do(func() {
		close(t.s.reached)
		<-t.s.release
	})
	return r, err
}

// raceAgainstMove moves r to the 26th and runs op while the move sits inside
// its unit of work. op must wait for the move to commit.
func raceAgainstMove(t *testing.T, f *fixture, r *models.Reservation, op func() error) {
	t.Helper()

	stall := newStallingRepo(f.repo)
	mover := NewUpdateReservation(stall, f.locker, f.audit)
	mover.now = f.clock

	moved := make(chan error, 1)
	go func() {
		_, err := mover.Execute(context.Background(), UpdateReservationInput{
			Locator: Locator{Token: *r.ManagementToken},
			Date:    strPtr("2024-12-26"),
		})
		moved <- err
	}()
	<-stall.reached

	done := make(chan error, 1)
	go func() { done <- op() }()

	select {
	case err := <-done:
		close(stall.release)
		t.Fatalf("write on the old day finished during the move: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(stall.release)
	require.NoError(t, <-moved)
	require.NoError(t, <-done)
}

func TestCancelDuringMoveToAnotherDayStaysCancelled(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "19:00", 2)

	raceAgainstMove(t, f, r, func() error {
		_, err := f.cancel.Execute(context.Background(), CancelReservationInput{
			Locator: Locator{Token: *r.ManagementToken},
		})
		return err
	})

	stored, err := f.repo.GetReservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Equal(t, "2024-12-26", stored.Date)
}

func TestConfirmDuringMoveToAnotherDayIsKept(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "19:00", 2)

	raceAgainstMove(t, f, r, func() error {
		_, err := f.transition.Execute(context.Background(), TransitionInput{
			ReservationID: r.ID,
			OperatorID:    uintPtr(1),
			Action:        ActionConfirm,
		})
		return err
	})

	stored, err := f.repo.GetReservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
	assert.Equal(t, "2024-12-26", stored.Date)
}

func TestUpdateAcrossDaysKeepsTableAndFreesOldDay(t *testing.T) {
	f := newFixture(t)
	r := f.book(t, "19:00", 2)

	got, err := f.update.Execute(context.Background(), UpdateReservationInput{
		Locator: Locator{Token: *r.ManagementToken},
		Date:    strPtr("2024-12-26"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-26", got.Date)
	assert.Equal(t, 1, f.tableNumber(t, got))

	left, err := f.repo.FindReservations(context.Background(), domain.ReservationFilter{
		RestaurantID: f.restaurant.ID,
		Date:         christmas,
	})
	require.NoError(t, err)
	assert.Empty(t, left)
}
