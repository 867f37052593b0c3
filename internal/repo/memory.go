package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// NewMemoryRepos builds in-memory repositories. Nothing is persisted; the
// collections live until the process exits.
func NewMemoryRepos() Repos {
	return Repos{
		Destinations: NewMemoryDestinationRepo(),
		Trips:        NewMemoryTripRepo(),
		Activities:   NewMemoryActivityRepo(),
		Expenses:     NewMemoryExpenseRepo(),
	}
}

// table is an insertion-ordered collection keyed by id. When parentOf is set
// it also maintains a derived index from parent id to child ids so dependent
// lookups never scan the whole collection.
type table[T any] struct {
	mu       sync.RWMutex
	name     string
	order    []int64
	rows     map[int64]T
	parentOf func(T) int64
	children map[int64][]int64
}

func newTable[T any](name string, parentOf func(T) int64) *table[T] {
	return &table[T]{
		name:     name,
		rows:     make(map[int64]T),
		parentOf: parentOf,
		children: make(map[int64][]int64),
	}
}

func (t *table[T]) insert(id int64, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; ok {
		return fmt.Errorf("%s %d: %w", t.name, id, domain.ErrDuplicateID)
	}
	t.rows[id] = v
	t.order = append(t.order, id)
	if t.parentOf != nil {
		p := t.parentOf(v)
		t.children[p] = append(t.children[p], id)
	}
	return nil
}

func (t *table[T]) get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return v, nil
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) listByParent(parent int64) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := t.children[parent]
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) countByParent(parent int64) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.children[parent])
}

// replace overwrites an existing row, moving it between parents if the
// parent key changed. Its position in insertion order is kept.
func (t *table[T]) replace(id int64, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	old, ok := t.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if t.parentOf != nil {
		if from, to := t.parentOf(old), t.parentOf(v); from != to {
			t.unlink(from, id)
			t.children[to] = append(t.children[to], id)
		}
	}
	t.rows[id] = v
	return nil
}

func (t *table[T]) remove(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	v, ok := t.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(t.rows, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	if t.parentOf != nil {
		t.unlink(t.parentOf(v), id)
	}
	return nil
}

// unlink drops id from parent's child list. Caller holds the write lock.
func (t *table[T]) unlink(parent, id int64) {
	ids := t.children[parent]
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	if len(ids) == 0 {
		delete(t.children, parent)
		return
	}
	t.children[parent] = ids
}

// stamp returns the timestamp the memory repos record for writes.
func stamp() time.Time {
	return time.Now().UTC()
}

// --- destinations -------------------------------------------------------------

type memDestinationRepo struct {
	t *table[domain.Destination]
}

// NewMemoryDestinationRepo constructs an empty in-memory DestinationRepo.
func NewMemoryDestinationRepo() DestinationRepo {
	return &memDestinationRepo{t: newTable[domain.Destination]("destination", nil)}
}

func (r *memDestinationRepo) Create(_ context.Context, d domain.Destination) (domain.Destination, error) {
	d.CreatedAt = stamp()
	d.UpdatedAt = d.CreatedAt
	if err := r.t.insert(d.ID, d); err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return d, nil
}

func (r *memDestinationRepo) GetByID(_ context.Context, id int64) (domain.Destination, error) {
	d, err := r.t.get(id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return d, nil
}

func (r *memDestinationRepo) List(_ context.Context) ([]domain.Destination, error) {
	return r.t.list(), nil
}

func (r *memDestinationRepo) Update(_ context.Context, d domain.Destination) (domain.Destination, error) {
	old, err := r.t.get(d.ID)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	d.CreatedAt = old.CreatedAt
	d.UpdatedAt = stamp()
	if err := r.t.replace(d.ID, d); err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return d, nil
}

func (r *memDestinationRepo) Delete(_ context.Context, id int64) error {
	if err := r.t.remove(id); err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	return nil
}

// --- trips --------------------------------------------------------------------

type memTripRepo struct {
	t *table[domain.Trip]
}

// NewMemoryTripRepo constructs an empty in-memory TripRepo indexed by destination.
func NewMemoryTripRepo() TripRepo {
	return &memTripRepo{t: newTable("trip", func(t domain.Trip) int64 { return t.DestinationID })}
}

func (r *memTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.CreatedAt = stamp()
	trip.UpdatedAt = trip.CreatedAt
	if err := r.t.insert(trip.ID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return trip, nil
}

func (r *memTripRepo) GetByID(_ context.Context, id int64) (domain.Trip, error) {
	trip, err := r.t.get(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

func (r *memTripRepo) List(_ context.Context) ([]domain.Trip, error) {
	return r.t.list(), nil
}

func (r *memTripRepo) ListByDestinationID(_ context.Context, destinationID int64) ([]domain.Trip, error) {
	return r.t.listByParent(destinationID), nil
}

func (r *memTripRepo) CountByDestinationID(_ context.Context, destinationID int64) (int, error) {
	return r.t.countByParent(destinationID), nil
}

func (r *memTripRepo) Update(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	old, err := r.t.get(trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	trip.CreatedAt = old.CreatedAt
	trip.UpdatedAt = stamp()
	if err := r.t.replace(trip.ID, trip); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return trip, nil
}

func (r *memTripRepo) Delete(_ context.Context, id int64) error {
	if err := r.t.remove(id); err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	return nil
}

// --- activities ---------------------------------------------------------------

type memActivityRepo struct {
	t *table[domain.Activity]
}

// NewMemoryActivityRepo constructs an empty in-memory ActivityRepo indexed by trip.
func NewMemoryActivityRepo() ActivityRepo {
	return &memActivityRepo{t: newTable("activity", func(a domain.Activity) int64 { return a.TripID })}
}

func (r *memActivityRepo) Create(_ context.Context, a domain.Activity) (domain.Activity, error) {
	a.CreatedAt = stamp()
	a.UpdatedAt = a.CreatedAt
	if err := r.t.insert(a.ID, a); err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return a, nil
}

func (r *memActivityRepo) GetByID(_ context.Context, id int64) (domain.Activity, error) {
	a, err := r.t.get(id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return a, nil
}

func (r *memActivityRepo) List(_ context.Context) ([]domain.Activity, error) {
	return r.t.list(), nil
}

func (r *memActivityRepo) ListByTripID(_ context.Context, tripID int64) ([]domain.Activity, error) {
	return r.t.listByParent(tripID), nil
}

func (r *memActivityRepo) CountByTripID(_ context.Context, tripID int64) (int, error) {
	return r.t.countByParent(tripID), nil
}

func (r *memActivityRepo) Update(_ context.Context, a domain.Activity) (domain.Activity, error) {
	old, err := r.t.get(a.ID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	a.TripID = old.TripID
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = stamp()
	if err := r.t.replace(a.ID, a); err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return a, nil
}

func (r *memActivityRepo) Delete(_ context.Context, id int64) error {
	if err := r.t.remove(id); err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	return nil
}

// --- expenses -----------------------------------------------------------------

type memExpenseRepo struct {
	t *table[domain.Expense]
}

// NewMemoryExpenseRepo constructs an empty in-memory ExpenseRepo indexed by trip.
func NewMemoryExpenseRepo() ExpenseRepo {
	return &memExpenseRepo{t: newTable("expense", func(e domain.Expense) int64 { return e.TripID })}
}

func (r *memExpenseRepo) Create(_ context.Context, e domain.Expense) (domain.Expense, error) {
	e.CreatedAt = stamp()
	e.UpdatedAt = e.CreatedAt
	if err := r.t.insert(e.ID, e); err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return e, nil
}

func (r *memExpenseRepo) GetByID(_ context.Context, id int64) (domain.Expense, error) {
	e, err := r.t.get(id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return e, nil
}

func (r *memExpenseRepo) List(_ context.Context) ([]domain.Expense, error) {
	return r.t.list(), nil
}

func (r *memExpenseRepo) ListByTripID(_ context.Context, tripID int64) ([]domain.Expense, error) {
	return r.t.listByParent(tripID), nil
}

func (r *memExpenseRepo) CountByTripID(_ context.Context, tripID int64) (int, error) {
	return r.t.countByParent(tripID), nil
}

func (r *memExpenseRepo) Update(_ context.Context, e domain.Expense) (domain.Expense, error) {
	old, err := r.t.get(e.ID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	e.TripID = old.TripID
	e.CreatedAt = old.CreatedAt
	e.UpdatedAt = stamp()
	if err := r.t.replace(e.ID, e); err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return e, nil
}

func (r *memExpenseRepo) Delete(_ context.Context, id int64) error {
	if err := r.t.remove(id); err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	return nil
}
