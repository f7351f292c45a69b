package domain

// Room is a unit of fixed inventory. Room numbers are dense from 1 and
// permanent; only the nightly rate may be corrected after creation.
type Room struct {
	Number        int     // Unique room number, 1-based
	Type          string  // Room category, e.g. "Standard"
	PricePerNight float64 // Nightly rate
}
