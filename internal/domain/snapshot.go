package domain

// Snapshot is the full persisted state of the store: every room, user, and
// reservation, in their in-memory order. Persistence backends serialize and
// reconstruct exactly this.
type Snapshot struct {
	Rooms        []Room
	Users        []User
	Reservations []Reservation
}
