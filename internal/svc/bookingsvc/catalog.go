package bookingsvc

import (
	"errors"

	"github.com/mkrupp/roomledger/internal/domain"
)

var errEmptyPolicy = errors.New("rate policy has no tiers")

// SearchAllTypes is the wildcard accepted by room type searches.
const SearchAllTypes = "all"

// catalog owns the Room records. Rooms are numbered densely from 1 and are
// never deleted; the backing array doubles when exhausted.
type catalog struct {
	rooms []domain.Room
	count int
}

func newCatalog() catalog {
	return catalog{rooms: make([]domain.Room, initialCatalogCapacity), count: 0}
}

const initialCatalogCapacity = 10

// seed fills an empty catalog with n rooms typed and priced by policy.
func (c *catalog) seed(n int, policy RatePolicy) {
	for i := 0; i < n; i++ {
		tier := policy.TierFor(i, n)
		c.append(tier.Type, tier.Rate)
	}
}

func (c *catalog) grow() {
	if c.count < len(c.rooms) {
		return
	}

	grown := make([]domain.Room, len(c.rooms)*2)
	copy(grown, c.rooms)
	c.rooms = grown
}

// append adds a room numbered count+1 and returns it.
func (c *catalog) append(roomType string, rate float64) domain.Room {
	c.grow()

	room := domain.Room{
		Number:        c.count + 1,
		Type:          roomType,
		PricePerNight: rate,
	}
	c.rooms[c.count] = room
	c.count++

	return room
}

// put places a room at its number's slot, growing the catalog through any
// gap. Used when replaying persisted rooms, which may arrive out of order.
func (c *catalog) put(room domain.Room) {
	if room.Number < 1 {
		return
	}

	for c.count < room.Number {
		c.grow()
		c.rooms[c.count] = domain.Room{Number: c.count + 1}
		c.count++
	}

	c.rooms[room.Number-1] = room
}

// fillGaps assigns a policy tier to the placeholder rooms put created while
// gap-filling, the same way seed types a fresh catalog. Rooms that carry a
// persisted type are left alone.
func (c *catalog) fillGaps(policy RatePolicy) {
	for i := range c.rooms[:c.count] {
		if c.rooms[i].Type != "" {
			continue
		}

		tier := policy.TierFor(i, c.count)
		c.rooms[i].Type = tier.Type
		c.rooms[i].PricePerNight = tier.Rate
	}
}

func (c *catalog) lookup(number int) (domain.Room, bool) {
	if number < 1 || number > c.count {
		return domain.Room{}, false
	}

	return c.rooms[number-1], true
}

func (c *catalog) list() []domain.Room {
	out := make([]domain.Room, c.count)
	copy(out, c.rooms[:c.count])

	return out
}

func (c *catalog) searchByType(roomType string) []domain.Room {
	var out []domain.Room

	for _, room := range c.rooms[:c.count] {
		if roomType == SearchAllTypes || room.Type == roomType {
			out = append(out, room)
		}
	}

	return out
}

// recomputeRates reassigns nightly rates from the policy's type table,
// normalizing drift after catalog growth or reload. Types the policy does
// not know keep their stored rate.
func (c *catalog) recomputeRates(policy RatePolicy) {
	for i := range c.rooms[:c.count] {
		if rate, ok := policy.RateFor(c.rooms[i].Type); ok {
			c.rooms[i].PricePerNight = rate
		}
	}
}
