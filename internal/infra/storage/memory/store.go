// Package memory provides an in-process storage driver with the same
// semantics as the postgres repositories. Used for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
)

type slotKey struct {
	partnerID int64
	start     int64 // unix nanos, UTC
}

type txMarker struct{}

// Store holds all entities behind one mutex.
// Transactions take the mutex for the whole callback and restore a snapshot on error or panic.
type Store struct {
	mu sync.Mutex

	now func() time.Time

	partners  map[int64]domain.Partner
	slots     map[int64]domain.Slot
	slotIndex map[slotKey]int64
	bookings  map[int64]domain.Booking
	customers map[int64]domain.Customer
	discounts map[int64]domain.DiscountCode

	nextSlotID     int64
	nextBookingID  int64
	nextCustomerID int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		now:       time.Now,
		partners:  make(map[int64]domain.Partner),
		slots:     make(map[int64]domain.Slot),
		slotIndex: make(map[slotKey]int64),
		bookings:  make(map[int64]domain.Booking),
		customers: make(map[int64]domain.Customer),
		discounts: make(map[int64]domain.DiscountCode),
	}
}

// PutPartner inserts or replaces a partner
func (s *Store) PutPartner(p domain.Partner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners[p.ID] = p
}

// PutDiscountCode inserts or replaces a discount code
func (s *Store) PutDiscountCode(d domain.DiscountCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discounts[d.ID] = d
}

// Do runs fn atomically. Nested calls reuse the outer transaction.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txMarker{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// DoReadOnly runs fn against a consistent view of the store
func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txMarker{}, s))
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txMarker{}).(*Store)
	return ok && owner == s
}

// lock takes the mutex unless ctx already runs inside a transaction of this store
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	slots     map[int64]domain.Slot
	slotIndex map[slotKey]int64
	bookings  map[int64]domain.Booking
	customers map[int64]domain.Customer

	nextSlotID     int64
	nextBookingID  int64
	nextCustomerID int64
}

// snapshot copies mutable state. Partners and discount codes are read-only here.
func (s *Store) snapshot() snapshot {
	return snapshot{
		slots:          copyMap(s.slots),
		slotIndex:      copyMap(s.slotIndex),
		bookings:       copyMap(s.bookings),
		customers:      copyMap(s.customers),
		nextSlotID:     s.nextSlotID,
		nextBookingID:  s.nextBookingID,
		nextCustomerID: s.nextCustomerID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.slots = snap.slots
	s.slotIndex = snap.slotIndex
	s.bookings = snap.bookings
	s.customers = snap.customers
	s.nextSlotID = snap.nextSlotID
	s.nextBookingID = snap.nextBookingID
	s.nextCustomerID = snap.nextCustomerID
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// detachBookings clears the slot reference of bookings pointing at a deleted slot (ON DELETE SET NULL)
func (s *Store) detachBookings(slotID int64) {
	for id, b := range s.bookings {
		if b.SlotID == slotID {
			b.SlotID = 0
			s.bookings[id] = b
		}
	}
}

func keyOf(partnerID int64, start time.Time) slotKey {
	return slotKey{partnerID: partnerID, start: start.UTC().UnixNano()}
}

// Slots returns the slot repository view
func (s *Store) Slots() *SlotRepository { return &SlotRepository{s: s} }

// Bookings returns the booking repository view
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{s: s} }

// Partners returns the partner repository view
func (s *Store) Partners() *PartnerRepository { return &PartnerRepository{s: s} }

// Customers returns the customer repository view
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

// Discounts returns the discount code repository view
func (s *Store) Discounts() *DiscountRepository { return &DiscountRepository{s: s} }
