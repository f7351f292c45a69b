package bookingsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrupp/roomledger/internal/domain"
	"github.com/mkrupp/roomledger/internal/infra/logging"
	"github.com/mkrupp/roomledger/internal/util/password"
)

// AddUser registers an account with a hashed credential. Adding an existing
// username is a no-op: the call reports added=false and leaves the stored
// record untouched.
func (s *Store) AddUser(ctx context.Context, username, plaintext string, isAdmin bool) (added bool, err error) {
	log := s.Log.With(logging.Group("user", "username", username, "admin", isAdmin))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "add user failed", "error", err)
		} else {
			log.DebugContext(ctx, "add user", "added", added)
		}
	}()

	// Usernames become fields of the colon-separated data file.
	if strings.Contains(username, ":") {
		return false, fmt.Errorf("%w: username %q", domain.ErrInvalidInput, username)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	added = s.directory.add(domain.User{
		Username: username,
		Password: hash,
		IsAdmin:  isAdmin,
	})
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if !added {
		return false, nil
	}

	if err := s.persistAfterMutation(ctx, snap); err != nil {
		return true, err
	}

	return true, nil
}

// Authenticate verifies a username/password pair and returns the account.
func (s *Store) Authenticate(ctx context.Context, username, plaintext string) (domain.User, error) {
	s.mu.RLock()
	user, ok := s.directory.get(username)
	s.mu.RUnlock()

	if !ok || !password.Verify(plaintext, user.Password) {
		s.Log.DebugContext(ctx, "authentication rejected", logging.Group("user", "username", username))

		return domain.User{}, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword replaces a user's credential after verifying the old one.
// Returns ErrUserNotFound for an absent user and ErrInvalidCredentials when
// the old password does not match.
func (s *Store) ChangePassword(ctx context.Context, username, oldPlaintext, newPlaintext string) (err error) {
	log := s.Log.With(logging.Group("user", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "change password failed", "error", err)
		} else {
			log.DebugContext(ctx, "password changed")
		}
	}()

	hash, err := password.Hash(newPlaintext)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()

	user, ok := s.directory.get(username)
	if !ok {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
	}

	if !password.Verify(oldPlaintext, user.Password) {
		s.mu.Unlock()

		return domain.ErrInvalidCredentials
	}

	s.directory.setPassword(username, hash)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	return s.persistAfterMutation(ctx, snap)
}

// DeleteUser removes an account and cascades deletion of all its
// reservations. The root admin account is protected and can never be
// deleted.
func (s *Store) DeleteUser(ctx context.Context, username string) (err error) {
	log := s.Log.With(logging.Group("user", "username", username))

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "delete user failed", "error", err)
		} else {
			log.DebugContext(ctx, "user deleted")
		}
	}()

	if username == domain.AdminUsername {
		return fmt.Errorf("%w: %s", domain.ErrProtectedUser, username)
	}

	s.mu.Lock()

	if _, ok := s.directory.get(username); !ok {
		s.mu.Unlock()

		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, username)
	}

	cascaded := s.ledger.removeAllForUser(username)
	s.directory.remove(username)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log = log.With("cascaded", cascaded)

	return s.persistAfterMutation(ctx, snap)
}

// Users returns every account in the directory.
func (s *Store) Users() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.directory.list()
}
