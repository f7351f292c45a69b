package snapshot

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mkrupp/roomledger/internal/domain"
	"github.com/mkrupp/roomledger/internal/infra/logging"
)

// Record tags of the line-oriented data file. Each line is one record with
// colon-separated fields:
//
//	USER:<username>:<password>:<isAdmin 0|1>
//	RESERVATION:<username>:<roomNumber>:<inDate>:<inTime>:<outDate>:<outTime>
//	ROOM:<roomNumber>:<roomType>:<pricePerNight>
//
// Usernames and room types must not contain ':'. Lines with an unknown tag
// or a wrong field count are skipped on load.
const (
	tagUser        = "USER"
	tagReservation = "RESERVATION"
	tagRoom        = "ROOM"
)

// Field counts after splitting on ':'. The two HH:MM times of a
// reservation line split as well, so one reservation record yields nine
// fields.
const (
	userFieldCount        = 4
	reservationFieldCount = 9
	roomFieldCount        = 4
)

// FlatFileSnapshotRepositoryConfig holds configuration for the flat-file snapshot repository.
type FlatFileSnapshotRepositoryConfig struct {
	// Path is the filesystem path of the data file
	Path string `env:"PATH" default:"var/storage/reservations.dat"`
}

// FlatFileSnapshotRepository implements Repository on a single line-oriented
// text file. Save truncates and rewrites the whole file; there is no atomic
// rename, so a crash mid-write can truncate state.
type FlatFileSnapshotRepository struct {
	cfg FlatFileSnapshotRepositoryConfig
	log logging.Logger
	m   *sync.Mutex
}

var _ Repository = (*FlatFileSnapshotRepository)(nil)

// FlatFileSnapshotRepositoryFactory creates a factory function that returns
// a new FlatFileSnapshotRepository. The factory function implements the
// RepositoryFactory type.
func FlatFileSnapshotRepositoryFactory(cfg FlatFileSnapshotRepositoryConfig) RepositoryFactory {
	return func() (Repository, error) {
		return NewFlatFileSnapshotRepository(cfg)
	}
}

// NewFlatFileSnapshotRepository creates a new FlatFileSnapshotRepository
// with the given configuration, creating the parent directory if needed.
func NewFlatFileSnapshotRepository(cfg FlatFileSnapshotRepositoryConfig) (*FlatFileSnapshotRepository, error) {
	log := logging.GetLogger("repo.snapshot.flatfile_snapshot_repository").With(
		logging.Group("repo", "path", cfg.Path),
	)

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir all: %w", err)
		}
	}

	return &FlatFileSnapshotRepository{
		cfg: cfg,
		log: log,
		m:   new(sync.Mutex),
	}, nil
}

// Load implements Repository.Load by parsing the data file line by line.
// A missing file yields an empty snapshot.
func (r *FlatFileSnapshotRepository) Load(ctx context.Context) (snap domain.Snapshot, err error) {
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

	file, err := os.Open(r.cfg.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, nil
		}

		return domain.Snapshot{}, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		r.decodeLine(&snap, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("scan: %w", err)
	}

	return snap, nil
}

// decodeLine appends the record on line to the snapshot, one case per record
// tag. Unrecognized or malformed lines are dropped silently.
func (r *FlatFileSnapshotRepository) decodeLine(snap *domain.Snapshot, line string) {
	fields := strings.Split(line, ":")

	switch fields[0] {
	case tagUser:
		if len(fields) != userFieldCount {
			return
		}

		snap.Users = append(snap.Users, domain.User{
			Username: fields[1],
			Password: fields[2],
			IsAdmin:  fields[3] == "1",
		})
	case tagReservation:
		if len(fields) != reservationFieldCount {
			return
		}

		roomNumber, err := strconv.Atoi(fields[2])
		if err != nil {
			return
		}

		snap.Reservations = append(snap.Reservations, domain.Reservation{
			Username:     fields[1],
			RoomNumber:   roomNumber,
			CheckInDate:  fields[3],
			CheckInTime:  fields[4] + ":" + fields[5],
			CheckOutDate: fields[6],
			CheckOutTime: fields[7] + ":" + fields[8],
		})
	case tagRoom:
		if len(fields) != roomFieldCount {
			return
		}

		roomNumber, err := strconv.Atoi(fields[1])
		if err != nil || roomNumber < 1 {
			return
		}

		price, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return
		}

		snap.Rooms = append(snap.Rooms, domain.Room{
			Number:        roomNumber,
			Type:          fields[2],
			PricePerNight: price,
		})
	}
}

// Save implements Repository.Save by rewriting the data file in full.
func (r *FlatFileSnapshotRepository) Save(ctx context.Context, snap domain.Snapshot) (err error) {
	r.m.Lock()
	defer r.m.Unlock()

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

	file, err := os.OpenFile(r.cfg.Path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, user := range snap.Users {
		isAdmin := 0
		if user.IsAdmin {
			isAdmin = 1
		}

		fmt.Fprintf(w, "%s:%s:%s:%d\n", tagUser, user.Username, user.Password, isAdmin)
	}

	for _, res := range snap.Reservations {
		fmt.Fprintf(w, "%s:%s:%d:%s:%s:%s:%s\n", tagReservation,
			res.Username, res.RoomNumber,
			res.CheckInDate, res.CheckInTime,
			res.CheckOutDate, res.CheckOutTime)
	}

	for _, room := range snap.Rooms {
		fmt.Fprintf(w, "%s:%d:%s:%.2f\n", tagRoom, room.Number, room.Type, room.PricePerNight)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	return nil
}

// Close implements Repository.Close. The flat-file backend holds no open
// resources between operations.
func (r *FlatFileSnapshotRepository) Close() error {
	return nil
}
