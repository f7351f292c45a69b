package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/mkrupp/roomledger/internal/domain"
	"github.com/mkrupp/roomledger/internal/infra/logging"
)

// SQLiteSnapshotRepositoryConfig holds configuration for the SQLite snapshot repository.
type SQLiteSnapshotRepositoryConfig struct {
	// DatabasePath is the filesystem path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" default:"var/storage/roomledger.db"`
}

// SQLiteSnapshotRepository implements Repository using SQLite as the storage
// backend. Row order is preserved through the seq column so that snapshots
// round-trip in their in-memory order.
type SQLiteSnapshotRepository struct {
	db        *sql.DB
	log       logging.Logger
	writeLock *sync.Mutex // go-sqlite does not support concurrent writes
}

var _ Repository = (*SQLiteSnapshotRepository)(nil)

// SQLiteSnapshotRepositoryFactory creates a factory function that returns a
// new SQLiteSnapshotRepository. The factory function implements the
// RepositoryFactory type.
func SQLiteSnapshotRepositoryFactory(cfg SQLiteSnapshotRepositoryConfig) RepositoryFactory {
	return func() (Repository, error) {
		return NewSQLiteSnapshotRepository(cfg)
	}
}

// NewSQLiteSnapshotRepository creates a new SQLiteSnapshotRepository with
// the given configuration. It initializes the database connection and
// creates the schema if needed.
func NewSQLiteSnapshotRepository(cfg SQLiteSnapshotRepositoryConfig) (*SQLiteSnapshotRepository, error) {
	log := logging.GetLogger("repo.snapshot.sqlite_snapshot_repository").With(
		logging.Group("db", "path", cfg.DatabasePath),
	)

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := initializeDB(db); err != nil {
		return nil, fmt.Errorf("initialize db: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteSnapshotRepository{
		db:        db,
		log:       log,
		writeLock: new(sync.Mutex),
	}, nil
}

func initializeDB(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			seq      INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT    UNIQUE NOT NULL,
			password TEXT    NOT NULL,
			is_admin INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS rooms (
			number          INTEGER PRIMARY KEY,
			room_type       TEXT NOT NULL,
			price_per_night REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS reservations (
			seq            INTEGER PRIMARY KEY AUTOINCREMENT,
			username       TEXT    NOT NULL,
			room_number    INTEGER NOT NULL,
			check_in_date  TEXT    NOT NULL,
			check_in_time  TEXT    NOT NULL,
			check_out_date TEXT    NOT NULL,
			check_out_time TEXT    NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// Load implements Repository.Load by reading every row of the three tables.
func (r *SQLiteSnapshotRepository) Load(ctx context.Context) (snap domain.Snapshot, err error) {
	defer func() {
		if err != nil {
			r.log.ErrorContext(ctx, "snapshot load failed", "error", err)
		} else {
			r.log.DebugContext(ctx, "snapshot loaded", logging.Group("snapshot",
				"rooms", len(snap.Rooms),
				"users", len(snap.Users),
				"reservations", len(snap.Reservations),
			))
		}
	}()

	if snap.Users, err = r.loadUsers(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	if snap.Reservations, err = r.loadReservations(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	if snap.Rooms, err = r.loadRooms(ctx); err != nil {
		return domain.Snapshot{}, err
	}

	return snap, nil
}

func (r *SQLiteSnapshotRepository) loadUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT username, password, is_admin FROM users ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User

	for rows.Next() {
		var (
			user    domain.User
			isAdmin int
		)

		if err := rows.Scan(&user.Username, &user.Password, &isAdmin); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}

		user.IsAdmin = isAdmin != 0
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *SQLiteSnapshotRepository) loadReservations(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT username, room_number, check_in_date, check_in_time, check_out_date, check_out_time
		FROM reservations ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation

	for rows.Next() {
		var res domain.Reservation

		if err := rows.Scan(
			&res.Username, &res.RoomNumber,
			&res.CheckInDate, &res.CheckInTime,
			&res.CheckOutDate, &res.CheckOutTime,
		); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}

		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations: %w", err)
	}

	return reservations, nil
}

func (r *SQLiteSnapshotRepository) loadRooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT number, room_type, price_per_night FROM rooms ORDER BY number")
	if err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room

	for rows.Next() {
		var room domain.Room

		if err := rows.Scan(&room.Number, &room.Type, &room.PricePerNight); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}

		rooms = append(rooms, room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}

// Save implements Repository.Save by replacing all rows in one transaction.
func (r *SQLiteSnapshotRepository) Save(ctx context.Context, snap domain.Snapshot) (err error) {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	defer func() {
		if err != nil {
			r.log.ErrorContext(ctx, "snapshot save failed", "error", err)
		} else {
			r.log.DebugContext(ctx, "snapshot saved", logging.Group("snapshot",
				"rooms", len(snap.Rooms),
				"users", len(snap.Users),
				"reservations", len(snap.Reservations),
			))
		}
	}()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"users", "reservations", "rooms"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, user := range snap.Users {
		isAdmin := 0
		if user.IsAdmin {
			isAdmin = 1
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO users (username, password, is_admin) VALUES (?, ?, ?)",
			user.Username, user.Password, isAdmin,
		); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
	}

	for _, res := range snap.Reservations {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO reservations
				(username, room_number, check_in_date, check_in_time, check_out_date, check_out_time)
			VALUES (?, ?, ?, ?, ?, ?)`,
			res.Username, res.RoomNumber,
			res.CheckInDate, res.CheckInTime,
			res.CheckOutDate, res.CheckOutTime,
		); err != nil {
			return fmt.Errorf("insert reservation: %w", err)
		}
	}

	for _, room := range snap.Rooms {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO rooms (number, room_type, price_per_night) VALUES (?, ?, ?)",
			room.Number, room.Type, room.PricePerNight,
		); err != nil {
			return fmt.Errorf("insert room: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Close implements Repository.Close by closing the database connection.
func (r *SQLiteSnapshotRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}
