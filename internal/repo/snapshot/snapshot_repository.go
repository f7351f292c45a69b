package snapshot

import (
	"context"

	"github.com/mkrupp/roomledger/internal/domain"
)

// Repository defines the interface for whole-state snapshot persistence.
// The store serializes its full state through Save and reconstructs it
// through Load; backends never see individual mutations.
type Repository interface {
	// Load reads the persisted snapshot. A missing data file or empty
	// database is not an error and yields an empty snapshot.
	Load(ctx context.Context) (domain.Snapshot, error)

	// Save persists the snapshot, fully replacing any previous state.
	// Returns an error if the operation fails; the caller's in-memory
	// state remains authoritative in that case.
	Save(ctx context.Context, snap domain.Snapshot) error

	// Close releases any resources held by the repository.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
