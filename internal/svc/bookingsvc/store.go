package bookingsvc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mkrupp/roomledger/internal/domain"
	"github.com/mkrupp/roomledger/internal/infra/logging"
	"github.com/mkrupp/roomledger/internal/repo/snapshot"
	"github.com/mkrupp/roomledger/internal/util/password"
)

// Clock abstracts wall-clock time so expiration sweeps are testable.
type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// StoreConfig contains configuration parameters for the reservation store.
type StoreConfig struct {
	// InitialRooms is the catalog size seeded when no persisted rooms exist
	InitialRooms int `env:"INITIAL_ROOMS" default:"10"`

	// RatePolicyFile is an optional YAML tier table overriding the built-in policy
	RatePolicyFile string `env:"RATE_POLICY_FILE" default:""`

	// SeedDefaultUsers creates the default admin and user accounts when the
	// directory is empty after load
	SeedDefaultUsers bool `env:"SEED_DEFAULT_USERS" default:"true"`

	// SaveOnMutation persists the full state after every successful mutation
	// instead of only on explicit Save calls
	SaveOnMutation bool `env:"SAVE_ON_MUTATION" default:"false"`
}

// Store is the single in-memory instance of the room catalog, user
// directory, and reservation ledger, with snapshot persistence behind it.
// All state lives here; there are no package-level mutable collections.
type Store struct {
	Config StoreConfig
	Repo   snapshot.Repository
	Log    logging.Logger
	Clock  Clock
	Policy RatePolicy

	mu        sync.RWMutex
	catalog   catalog
	directory directory
	ledger    ledger
}

// NewStore creates a Store backed by the repository the factory produces.
// Call Load before serving operations.
func NewStore(repoFactory snapshot.RepositoryFactory, cfg StoreConfig) (*Store, error) {
	log := logging.GetLogger("svc.bookingsvc.store")

	policy := DefaultRatePolicy()

	if cfg.RatePolicyFile != "" {
		loaded, err := LoadRatePolicy(cfg.RatePolicyFile)
		if err != nil {
			return nil, fmt.Errorf("load rate policy: %w", err)
		}

		policy = loaded
	}

	repo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new snapshot repo: %w", err)
	}

	return &Store{
		Config:    cfg,
		Repo:      repo,
		Log:       log,
		Clock:     RealClock{},
		Policy:    policy,
		catalog:   newCatalog(),
		directory: newDirectory(),
		ledger:    ledger{},
	}, nil
}

// Load populates the store from the persisted snapshot. Rooms replay into
// their numbered slots (seeding the configured initial catalog when none
// were persisted), duplicate usernames are skipped, and every reservation
// line appends. Rates are then normalized against the policy and default
// accounts are seeded into an empty directory.
func (s *Store) Load(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			s.Log.ErrorContext(ctx, "load failed", "error", err)
		} else {
			s.Log.DebugContext(ctx, "store loaded", logging.Group("store",
				"rooms", s.catalog.count,
				"users", len(s.directory.users),
				"reservations", len(s.ledger.reservations),
			))
		}
	}()

	snap, err := s.Repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(snap.Rooms) == 0 {
		s.catalog.seed(s.Config.InitialRooms, s.Policy)
	} else {
		for _, room := range snap.Rooms {
			s.catalog.put(room)
		}

		s.catalog.fillGaps(s.Policy)
	}

	for _, user := range snap.Users {
		s.directory.add(user)
	}

	for _, res := range snap.Reservations {
		s.ledger.append(res)
	}

	s.catalog.recomputeRates(s.Policy)

	if s.Config.SeedDefaultUsers && len(s.directory.users) == 0 {
		if err := s.seedDefaultUsersLocked(); err != nil {
			return fmt.Errorf("seed default users: %w", err)
		}
	}

	return nil
}

func (s *Store) seedDefaultUsersLocked() error {
	seeds := []struct {
		username, plaintext string
		isAdmin             bool
	}{
		{domain.AdminUsername, "admin123", true},
		{"user1", "password1", false},
	}

	for _, seed := range seeds {
		hash, err := password.Hash(seed.plaintext)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		s.directory.add(domain.User{
			Username: seed.username,
			Password: hash,
			IsAdmin:  seed.isAdmin,
		})
	}

	return nil
}

func (s *Store) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Rooms:        s.catalog.list(),
		Users:        s.directory.list(),
		Reservations: s.ledger.list(),
	}
}

// Save serializes the full state through the snapshot repository. On
// failure the error is returned and the in-memory state stays
// authoritative.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	snap := s.snapshotLocked()
	s.mu.RUnlock()

	if err := s.Repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

// persistAfterMutation saves the already-captured snapshot when the store
// runs in save-on-mutation mode. The mutation has succeeded either way.
func (s *Store) persistAfterMutation(ctx context.Context, snap domain.Snapshot) error {
	if !s.Config.SaveOnMutation {
		return nil
	}

	if err := s.Repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

// Close releases the persistence backend.
func (s *Store) Close() error {
	if err := s.Repo.Close(); err != nil {
		return fmt.Errorf("close snapshot repo: %w", err)
	}

	return nil
}

// CheckExpiredReservations sweeps the ledger once, removing every
// reservation whose check-out is strictly before the clock's current
// instant. Returns the number of reservations retired.
func (s *Store) CheckExpiredReservations(ctx context.Context) (int, error) {
	date, tod := stampNow(s.Clock)

	s.mu.Lock()
	removed := s.ledger.expireBefore(date, tod)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.Log.DebugContext(ctx, "expiration sweep", logging.Group("sweep",
		"removed", removed,
		"cutoff", date+" "+tod,
	))

	if removed == 0 {
		return 0, nil
	}

	if err := s.persistAfterMutation(ctx, snap); err != nil {
		return removed, err
	}

	return removed, nil
}

// OccupancyStats is a point-in-time statistics snapshot. BookedRooms counts
// rooms with at least one reservation on the ledger, current or not.
type OccupancyStats struct {
	TotalRooms       int
	BookedRooms      int
	ReservationCount int
	OccupancyPercent int
}

// Stats computes the occupancy snapshot. The percentage uses truncating
// integer division and is 0 for an empty catalog.
func (s *Store) Stats() OccupancyStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := OccupancyStats{
		TotalRooms:       s.catalog.count,
		BookedRooms:      s.ledger.bookedRooms(),
		ReservationCount: len(s.ledger.reservations),
	}

	if stats.TotalRooms > 0 {
		stats.OccupancyPercent = stats.BookedRooms * 100 / stats.TotalRooms
	}

	return stats
}
