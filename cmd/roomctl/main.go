// roomctl is the maintenance driver for the reservation store: it loads the
// persisted state, retires expired reservations, reports occupancy, and
// writes the state back. The interactive shell drives the same store API;
// this command covers the non-interactive lifecycle.
package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mkrupp/roomledger/internal/infra/config"
	"github.com/mkrupp/roomledger/internal/infra/logging"
	"github.com/mkrupp/roomledger/internal/repo/snapshot"
	"github.com/mkrupp/roomledger/internal/svc/bookingsvc"
)

const (
	appName = "roomledger"
	cmdName = "roomctl"
)

var errUnknownBackend = errors.New("unknown store backend")

type Config struct {
	config.EnvConfig

	// Backend selects the persistence backend ("flatfile" or "sqlite")
	Backend string `env:"BACKEND" default:"flatfile"`

	Log      logging.LoggerConfig                      `envPrefix:"LOG_"`
	Store    bookingsvc.StoreConfig                    `envPrefix:"STORE_"`
	FlatFile snapshot.FlatFileSnapshotRepositoryConfig `envPrefix:"FLATFILE_"`
	SQLite   snapshot.SQLiteSnapshotRepositoryConfig   `envPrefix:"SQLITE_"`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()

		configPrefix = strings.ToUpper(strings.Join([]string{appName, cmdName}, "_"))
		loggerName   = strings.ToLower(strings.Join([]string{appName, cmdName}, "."))
	)

	_ = godotenv.Load() // optional .env, real environment wins

	if err := config.Parse(ctx, &cfg, configPrefix); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, loggerName)

	if err := run(ctx, cfg); err != nil {
		panic(err)
	}
}

func repoFactory(cfg Config) (snapshot.RepositoryFactory, error) {
	switch cfg.Backend {
	case "flatfile":
		return snapshot.FlatFileSnapshotRepositoryFactory(cfg.FlatFile), nil
	case "sqlite":
		return snapshot.SQLiteSnapshotRepositoryFactory(cfg.SQLite), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Backend)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	log := logging.GetLogger("cmd.roomctl")

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)
		} else {
			log.InfoContext(ctx, "shutdown")
		}
	}()

	factory, err := repoFactory(cfg)
	if err != nil {
		return err
	}

	store, err := bookingsvc.NewStore(factory, cfg.Store)
	if err != nil {
		return fmt.Errorf("new store: %w", err)
	}
	defer store.Close()

	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("load store: %w", err)
	}

	expired, err := store.CheckExpiredReservations(ctx)
	if err != nil {
		return fmt.Errorf("expire reservations: %w", err)
	}

	stats := store.Stats()
	log.InfoContext(ctx, "store state", logging.Group("stats",
		"totalRooms", stats.TotalRooms,
		"bookedRooms", stats.BookedRooms,
		"reservations", stats.ReservationCount,
		"occupancyPercent", stats.OccupancyPercent,
		"expired", expired,
	))

	if err := store.Save(ctx); err != nil {
		return fmt.Errorf("save store: %w", err)
	}

	return nil
}
