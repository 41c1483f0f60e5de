package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"hostel-desk/internal/metrics"
	"hostel-desk/internal/model"
)

// Backend is the read side of the resource client the caches refresh from.
type Backend interface {
	Rooms(ctx context.Context) ([]model.Room, error)
	Bookings(ctx context.Context) ([]model.Booking, error)
}

// State owns the room cache and the booking store. Both are full-refresh caches:
// a reload discards everything and replaces it with the backend's current list.
//
// Reloads of the same collection may overlap. Each one takes a sequence number
// when issued and its result is applied only if no later-issued reload has been
// applied already; older results are dropped.
type State struct {
	backend Backend
	metrics *metrics.Metrics

	mu       sync.RWMutex
	rooms    []model.Room
	roomIdx  map[model.ID]model.Room
	bookings []model.Booking

	roomSeq        sequencer
	bookingSeq     sequencer
	roomsLoaded    bool
	bookingsLoaded bool
}

// NewState creates empty caches over backend. m may be nil.
func NewState(backend Backend, m *metrics.Metrics) *State {
	return &State{
		backend: backend,
		metrics: m,
		roomIdx: make(map[model.ID]model.Room),
	}
}

// ReloadRooms replaces the room cache with the backend's rooms. On error the cache
// keeps its previous content.
func (s *State) ReloadRooms(ctx context.Context) error {
	seq := s.roomSeq.issue()
	rooms, err := s.backend.Rooms(ctx)
	if err != nil {
		s.metrics.ObserveReload("rooms", metrics.ReloadFailed)
		return fmt.Errorf("reload rooms: %w", err)
	}

	idx := make(map[model.ID]model.Room, len(rooms))
	for _, r := range rooms {
		idx[r.ID] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.roomSeq.apply(seq) {
		log.Printf("Discarding stale rooms reload #%d", seq)
		s.metrics.ObserveReload("rooms", metrics.ReloadStale)
		return nil
	}
	s.rooms = rooms
	s.roomIdx = idx
	s.roomsLoaded = true
	s.metrics.ObserveReload("rooms", metrics.ReloadApplied)
	return nil
}

// ReloadBookings replaces the booking store with the backend's bookings. On error
// the store keeps its previous content.
func (s *State) ReloadBookings(ctx context.Context) error {
	seq := s.bookingSeq.issue()
	bookings, err := s.backend.Bookings(ctx)
	if err != nil {
		s.metrics.ObserveReload("bookings", metrics.ReloadFailed)
		return fmt.Errorf("reload bookings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bookingSeq.apply(seq) {
		log.Printf("Discarding stale bookings reload #%d", seq)
		s.metrics.ObserveReload("bookings", metrics.ReloadStale)
		return nil
	}
	s.bookings = bookings
	s.bookingsLoaded = true
	s.metrics.ObserveReload("bookings", metrics.ReloadApplied)
	return nil
}

// LoadAll populates the room cache first, then the booking store.
func (s *State) LoadAll(ctx context.Context) error {
	if err := s.ReloadRooms(ctx); err != nil {
		return err
	}
	return s.ReloadBookings(ctx)
}

// Room resolves a room id against the cache.
func (s *State) Room(id model.ID) (model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roomIdx[id]
	return r, ok
}

// Rooms returns the cached rooms in backend order.
func (s *State) Rooms() []model.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Room(nil), s.rooms...)
}

// Booking finds a booking in the store by id.
func (s *State) Booking(id model.ID) (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

// Snapshot returns a consistent, read-only view of both caches.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Rooms:          s.rooms,
		Bookings:       s.bookings,
		roomIdx:        s.roomIdx,
		RoomsLoaded:    s.roomsLoaded,
		BookingsLoaded: s.bookingsLoaded,
	}
}

// Snapshot is an immutable view of the caches. Reloads swap in new slices and maps
// instead of mutating old ones, so a snapshot stays valid after later reloads.
type Snapshot struct {
	Rooms          []model.Room
	Bookings       []model.Booking
	RoomsLoaded    bool
	BookingsLoaded bool
	roomIdx        map[model.ID]model.Room
}

// Room resolves a room id within the snapshot.
func (s Snapshot) Room(id model.ID) (model.Room, bool) {
	r, ok := s.roomIdx[id]
	return r, ok
}

// sequencer numbers reloads. Callers hold State.mu around apply.
type sequencer struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

func (q *sequencer) issue() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.issued++
	return q.issued
}

func (q *sequencer) apply(seq uint64) bool {
	if seq < q.applied {
		return false
	}
	q.applied = seq
	return true
}
