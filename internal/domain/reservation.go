package domain

// Reservation is a time-bounded booking of one room by one user. Username
// and room number are links by value, resolved by lookup at use time; they
// are not enforced as foreign keys.
//
// Invariant: check-in is strictly before check-out as a combined date+time
// ordering. Dates are "YYYY-MM-DD", times are "HH:MM", both zero-padded.
type Reservation struct {
	Username     string
	RoomNumber   int
	CheckInDate  string
	CheckInTime  string
	CheckOutDate string
	CheckOutTime string
}
