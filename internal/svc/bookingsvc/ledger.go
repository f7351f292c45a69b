package bookingsvc

import (
	"github.com/mkrupp/roomledger/internal/domain"
	"github.com/mkrupp/roomledger/internal/util/calendar"
)

// ledger owns the Reservation records in insertion order.
type ledger struct {
	reservations []domain.Reservation
}

// append adds a reservation unconditionally. Load replays persisted lines
// through this same primitive, so duplicate reservation lines append twice.
func (l *ledger) append(res domain.Reservation) {
	l.reservations = append(l.reservations, res)
}

// find returns the index of the unique reservation for (username, room),
// or -1.
func (l *ledger) find(username string, roomNumber int) int {
	for i, res := range l.reservations {
		if res.Username == username && res.RoomNumber == roomNumber {
			return i
		}
	}

	return -1
}

func (l *ledger) removeAt(i int) {
	l.reservations = append(l.reservations[:i], l.reservations[i+1:]...)
}

// removeAllForUser drops every reservation held by username and returns how
// many were removed.
func (l *ledger) removeAllForUser(username string) int {
	return l.removeIf(func(res domain.Reservation) bool {
		return res.Username == username
	})
}

// expireBefore drops every reservation whose check-out is strictly before
// the given instant and returns how many were removed.
func (l *ledger) expireBefore(date, tod string) int {
	return l.removeIf(func(res domain.Reservation) bool {
		return calendar.CompareDateTime(res.CheckOutDate, res.CheckOutTime, date, tod) < 0
	})
}

func (l *ledger) removeIf(drop func(domain.Reservation) bool) int {
	kept := l.reservations[:0]

	for _, res := range l.reservations {
		if !drop(res) {
			kept = append(kept, res)
		}
	}

	removed := len(l.reservations) - len(kept)
	l.reservations = kept

	return removed
}

// isAvailable reports whether no existing reservation for the room overlaps
// the requested [checkIn, checkOut) date range. Half-open semantics: ranges
// that merely touch do not overlap. Time of day is ignored for this coarse
// check.
func (l *ledger) isAvailable(roomNumber int, checkInDate, checkOutDate string) bool {
	for _, res := range l.reservations {
		if res.RoomNumber != roomNumber {
			continue
		}

		if !(calendar.CompareDates(checkOutDate, res.CheckInDate) <= 0 ||
			calendar.CompareDates(checkInDate, res.CheckOutDate) >= 0) {
			return false
		}
	}

	return true
}

func (l *ledger) byUser(username string) []domain.Reservation {
	var out []domain.Reservation

	for _, res := range l.reservations {
		if res.Username == username {
			out = append(out, res)
		}
	}

	return out
}

func (l *ledger) byRoom(roomNumber int) []domain.Reservation {
	var out []domain.Reservation

	for _, res := range l.reservations {
		if res.RoomNumber == roomNumber {
			out = append(out, res)
		}
	}

	return out
}

func (l *ledger) list() []domain.Reservation {
	out := make([]domain.Reservation, len(l.reservations))
	copy(out, l.reservations)

	return out
}

// bookedRooms counts rooms holding at least one reservation, current or not.
func (l *ledger) bookedRooms() int {
	seen := make(map[int]struct{})

	for _, res := range l.reservations {
		seen[res.RoomNumber] = struct{}{}
	}

	return len(seen)
}
