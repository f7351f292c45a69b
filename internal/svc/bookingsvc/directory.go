package bookingsvc

import (
	"github.com/mkrupp/roomledger/internal/domain"
)

// directory owns the User records, keyed by case-sensitive username.
// A slice keeps save order stable; the index map serves lookups.
type directory struct {
	users []domain.User
	index map[string]int
}

func newDirectory() directory {
	return directory{index: make(map[string]int)}
}

// add inserts a user record as-is. Returns false without mutation when the
// username is already taken, so replaying a snapshot is idempotent for
// users.
func (d *directory) add(user domain.User) bool {
	if _, exists := d.index[user.Username]; exists {
		return false
	}

	d.index[user.Username] = len(d.users)
	d.users = append(d.users, user)

	return true
}

func (d *directory) get(username string) (domain.User, bool) {
	i, ok := d.index[username]
	if !ok {
		return domain.User{}, false
	}

	return d.users[i], true
}

func (d *directory) setPassword(username, stored string) bool {
	i, ok := d.index[username]
	if !ok {
		return false
	}

	d.users[i].Password = stored

	return true
}

// remove deletes a user, preserving the order of the rest.
func (d *directory) remove(username string) bool {
	i, ok := d.index[username]
	if !ok {
		return false
	}

	d.users = append(d.users[:i], d.users[i+1:]...)
	delete(d.index, username)

	for j := i; j < len(d.users); j++ {
		d.index[d.users[j].Username] = j
	}

	return true
}

func (d *directory) list() []domain.User {
	out := make([]domain.User, len(d.users))
	copy(out, d.users)

	return out
}
