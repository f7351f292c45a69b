package bookingsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrupp/roomledger/internal/domain"
	"github.com/mkrupp/roomledger/internal/infra/logging"
)

// CreateRoom appends a room numbered one past the current count. Rooms are
// permanent capacity; there is no delete.
func (s *Store) CreateRoom(ctx context.Context, roomType string, rate float64) (room domain.Room, err error) {
	defer func() {
		if err != nil {
			s.Log.ErrorContext(ctx, "create room failed", "error", err)
		} else {
			s.Log.DebugContext(ctx, "room created", logging.Group("room",
				"number", room.Number,
				"type", room.Type,
				"rate", room.PricePerNight,
			))
		}
	}()

	// Room types become fields of the colon-separated data file.
	if strings.Contains(roomType, ":") {
		return domain.Room{}, fmt.Errorf("%w: room type %q", domain.ErrInvalidInput, roomType)
	}

	s.mu.Lock()
	room = s.catalog.append(roomType, rate)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persistAfterMutation(ctx, snap); err != nil {
		return room, err
	}

	return room, nil
}

// Room looks up a room by number.
func (s *Store) Room(number int) (domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.catalog.lookup(number)
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: room %d", domain.ErrRoomNotFound, number)
	}

	return room, nil
}

// Rooms returns the full catalog in room-number order.
func (s *Store) Rooms() []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.list()
}

// SearchRoomsByType returns rooms of the given type; SearchAllTypes matches
// everything.
func (s *Store) SearchRoomsByType(roomType string) []domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog.searchByType(roomType)
}

// RecomputeRates reassigns nightly rates from the active policy's type
// table.
func (s *Store) RecomputeRates(ctx context.Context) error {
	s.mu.Lock()
	s.catalog.recomputeRates(s.Policy)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.Log.DebugContext(ctx, "rates recomputed")

	return s.persistAfterMutation(ctx, snap)
}
