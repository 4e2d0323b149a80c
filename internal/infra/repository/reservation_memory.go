package repository

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

// MemoryRepository keeps everything in id-keyed maps. Values are copied in and
// out, so callers never share memory with the store. Every insert and update
// re-checks the no-overlap invariant and fails with ErrConflict.
type MemoryRepository struct {
	mu sync.RWMutex

	lastID uint

	restaurants  map[uint]models.Restaurant
	openingHours map[uint]map[int]models.OpeningHours
	tables       map[uint]models.Table
	reservations map[uint]models.Reservation
	tokens       map[string]uint

	daysMu sync.Mutex
	days   map[string]*sync.Mutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		restaurants:  make(map[uint]models.Restaurant),
		openingHours: make(map[uint]map[int]models.OpeningHours),
		tables:       make(map[uint]models.Table),
		reservations: make(map[uint]models.Reservation),
		tokens:       make(map[string]uint),
		days:         make(map[string]*sync.Mutex),
	}
}

func (m *MemoryRepository) nextID() uint {
	m.lastID++
	return m.lastID
}

// Seed stores a restaurant with its tables and schedule and returns the stored copy.
func (m *MemoryRepository) Seed(
	restaurant models.Restaurant,
	tables []models.Table,
	hours []models.OpeningHours,
) models.Restaurant {

	m.mu.Lock()
	defer m.mu.Unlock()

	restaurant.ID = m.nextID()
	restaurant.OpeningHours = nil
	m.restaurants[restaurant.ID] = restaurant

	for _, t := range tables {
		t.ID = m.nextID()
		t.RestaurantID = restaurant.ID
		m.tables[t.ID] = t
	}

	m.setOpeningHours(restaurant.ID, hours)

	return restaurant
}

// --------------------------------------------------
// Restaurant
// --------------------------------------------------

func (m *MemoryRepository) FindActiveRestaurant(ctx context.Context) (*models.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var found *models.Restaurant
	for _, r := range m.restaurants {
		if !r.IsActive {
			continue
		}
		if found == nil || r.ID < found.ID {
			cp := r
			found = &cp
		}
	}
	if found == nil {
		return nil, domain.ErrRestaurantNotFound
	}
	return found, nil
}

func (m *MemoryRepository) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.restaurants[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &r, nil
}

// --------------------------------------------------
// Opening hours
// --------------------------------------------------

func (m *MemoryRepository) FindOpeningHours(
	ctx context.Context,
	restaurantID uint,
	weekday int,
) (*models.OpeningHours, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	oh, ok := m.openingHours[restaurantID][weekday]
	if !ok {
		return nil, nil
	}
	return &oh, nil
}

func (m *MemoryRepository) ListOpeningHours(
	ctx context.Context,
	restaurantID uint,
) ([]models.OpeningHours, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.OpeningHours, 0, len(m.openingHours[restaurantID]))
	for _, oh := range m.openingHours[restaurantID] {
		out = append(out, oh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (m *MemoryRepository) ReplaceOpeningHours(
	ctx context.Context,
	restaurantID uint,
	rows []models.OpeningHours,
) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.restaurants[restaurantID]; !ok {
		return domain.ErrRestaurantNotFound
	}
	m.setOpeningHours(restaurantID, rows)
	return nil
}

func (m *MemoryRepository) setOpeningHours(restaurantID uint, rows []models.OpeningHours) {
	byDay := make(map[int]models.OpeningHours, len(rows))
	for _, oh := range rows {
		oh.ID = m.nextID()
		oh.RestaurantID = restaurantID
		byDay[oh.Weekday] = oh
	}
	m.openingHours[restaurantID] = byDay
}

// --------------------------------------------------
// Tables
// --------------------------------------------------

func (m *MemoryRepository) FindActiveTables(
	ctx context.Context,
	restaurantID uint,
) ([]models.Table, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Table, 0)
	for _, t := range m.tables {
		if t.RestaurantID == restaurantID && t.IsActive {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Capacity != out[j].Capacity {
			return out[i].Capacity < out[j].Capacity
		}
		return out[i].Number < out[j].Number
	})
	return out, nil
}

// --------------------------------------------------
// Reservations
// --------------------------------------------------

func (m *MemoryRepository) FindReservations(
	ctx context.Context,
	f domain.ReservationFilter,
) ([]models.Reservation, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Reservation, 0)
	for _, r := range m.reservations {
		if r.RestaurantID != f.RestaurantID || r.Date != f.Date {
			continue
		}
		if !f.IncludeCancelled && domain.Status(r.Status) == domain.StatusCancelled {
			continue
		}
		if f.ExcludeID != nil && r.ID == *f.ExcludeID {
			continue
		}
		out = append(out, m.withTable(r))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryRepository) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	out := m.withTable(r)
	return &out, nil
}

func (m *MemoryRepository) GetReservationByToken(
	ctx context.Context,
	token string,
) (*models.Reservation, error) {

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	out := m.withTable(m.reservations[id])
	return &out, nil
}

func (m *MemoryRepository) InsertReservation(ctx context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneReservation(*r)
	if err := m.checkWritable(&stored); err != nil {
		return err
	}

	stored.ID = m.nextID()
	now := timeNow()
	stored.CreatedAt, stored.UpdatedAt = now, now

	m.put(stored)

	r.ID = stored.ID
	r.CreatedAt, r.UpdatedAt = now, now
	return nil
}

func (m *MemoryRepository) UpdateReservation(ctx context.Context, r *models.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.reservations[r.ID]
	if !ok {
		return domain.ErrReservationNotFound
	}

	stored := cloneReservation(*r)
	if err := m.checkWritable(&stored); err != nil {
		return err
	}

	if prev.ManagementToken != nil {
		delete(m.tokens, *prev.ManagementToken)
	}

	stored.CreatedAt = prev.CreatedAt
	stored.UpdatedAt = timeNow()
	m.put(stored)

	r.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *MemoryRepository) put(r models.Reservation) {
	m.reservations[r.ID] = r
	if r.ManagementToken != nil {
		m.tokens[*r.ManagementToken] = r.ID
	}
}

// checkWritable enforces what the database enforces with constraints: unique
// tokens and no two live reservations overlapping on the same table.
func (m *MemoryRepository) checkWritable(r *models.Reservation) error {
	if r.ManagementToken != nil {
		if id, taken := m.tokens[*r.ManagementToken]; taken && id != r.ID {
			return domain.ErrConflict
		}
	}

	for _, other := range m.reservations {
		if other.ID == r.ID || other.RestaurantID != r.RestaurantID {
			continue
		}
		clash, err := domain.Conflicts(r, &other)
		if err != nil {
			return err
		}
		if clash {
			return domain.ErrConflict
		}
	}
	return nil
}

func (m *MemoryRepository) withTable(r models.Reservation) models.Reservation {
	out := cloneReservation(r)
	if out.TableID != nil {
		if t, ok := m.tables[*out.TableID]; ok {
			out.Table = &t
		}
	}
	return out
}

// --------------------------------------------------
// Unit of work
// --------------------------------------------------

func (m *MemoryRepository) dayLock(key string) *sync.Mutex {
	m.daysMu.Lock()
	defer m.daysMu.Unlock()

	mu, ok := m.days[key]
	if !ok {
		mu = &sync.Mutex{}
		m.days[key] = mu
	}
	return mu
}

// WithinDay serializes units of work per restaurant day. There is no rollback:
// callers do their single write last.
func (m *MemoryRepository) WithinDay(
	ctx context.Context,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	key := domain.DayLockKey(restaurantID, date)
	mu := m.dayLock(key)
	mu.Lock()
	defer mu.Unlock()

	return fn(&memoryDay{MemoryRepository: m, key: key})
}

// memoryDay is the repository handed to a unit of work; re-entering the same day
// must not deadlock on the day mutex it already holds.
type memoryDay struct {
	*MemoryRepository
	key string
}

func (d *memoryDay) WithinDay(
	ctx context.Context,
	restaurantID uint,
	date string,
	fn func(tx domain.Repository) error,
) error {

	if domain.DayLockKey(restaurantID, date) == d.key {
		return fn(d)
	}
	return d.MemoryRepository.WithinDay(ctx, restaurantID, date, fn)
}

func cloneReservation(r models.Reservation) models.Reservation {
	out := r
	out.Table = nil
	if r.TableID != nil {
		id := *r.TableID
		out.TableID = &id
	}
	if r.UserID != nil {
		id := *r.UserID
		out.UserID = &id
	}
	if r.ManagementToken != nil {
		tok := *r.ManagementToken
		out.ManagementToken = &tok
	}
	out.TokenExpiresAt = cloneTime(r.TokenExpiresAt)
	out.ConfirmedAt = cloneTime(r.ConfirmedAt)
	out.CancelledAt = cloneTime(r.CancelledAt)
	out.CompletedAt = cloneTime(r.CompletedAt)
	return out
}

var (
	_ domain.Repository = (*MemoryRepository)(nil)
	_ domain.Repository = (*memoryDay)(nil)
)
