package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mkrupp/roomledger/internal/domain"

	. "github.com/mkrupp/roomledger/internal/repo/snapshot"
)

func setupFlatFileTestRepo(t *testing.T) (*FlatFileSnapshotRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reservations.dat")

	repo, err := NewFlatFileSnapshotRepository(FlatFileSnapshotRepositoryConfig{Path: path})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	return repo, path
}

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Rooms: []domain.Room{
			{Number: 1, Type: "Standard", PricePerNight: 1500},
			{Number: 2, Type: "Suite", PricePerNight: 3000},
		},
		Users: []domain.User{
			{Username: "admin", Password: "admin123", IsAdmin: true},
			{Username: "alice", Password: "wonder", IsAdmin: false},
		},
		Reservations: []domain.Reservation{
			{
				Username: "alice", RoomNumber: 1,
				CheckInDate: "2025-06-01", CheckInTime: "14:00",
				CheckOutDate: "2025-06-03", CheckOutTime: "11:00",
			},
		},
	}
}

func TestFlatFileSnapshotRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := setupFlatFileTestRepo(t)
	ctx := context.Background()
	want := testSnapshot()

	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestFlatFileSnapshotRepository_WireFormat(t *testing.T) {
	t.Parallel()

	repo, path := setupFlatFileTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read data file: %v", err)
	}

	want := "USER:admin:admin123:1\n" +
		"USER:alice:wonder:0\n" +
		"RESERVATION:alice:1:2025-06-01:14:00:2025-06-03:11:00\n" +
		"ROOM:1:Standard:1500.00\n" +
		"ROOM:2:Suite:3000.00\n"

	if string(content) != want {
		t.Errorf("data file mismatch\ngot:\n%s\nwant:\n%s", content, want)
	}
}

func TestFlatFileSnapshotRepository_LoadParsesReservationTimes(t *testing.T) {
	t.Parallel()

	repo, path := setupFlatFileTestRepo(t)

	raw := "RESERVATION:alice:1:2025-06-01:14:00:2025-06-03:11:00\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(snap.Reservations) != 1 {
		t.Fatalf("loaded %d reservations, want 1", len(snap.Reservations))
	}

	want := domain.Reservation{
		Username: "alice", RoomNumber: 1,
		CheckInDate: "2025-06-01", CheckInTime: "14:00",
		CheckOutDate: "2025-06-03", CheckOutTime: "11:00",
	}
	if snap.Reservations[0] != want {
		t.Errorf("reservation = %+v, want %+v", snap.Reservations[0], want)
	}
}

func TestFlatFileSnapshotRepository_LoadMissingFile(t *testing.T) {
	t.Parallel()

	repo, _ := setupFlatFileTestRepo(t)

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}

	if len(snap.Rooms) != 0 || len(snap.Users) != 0 || len(snap.Reservations) != 0 {
		t.Errorf("Load() on missing file = %+v, want empty snapshot", snap)
	}
}

func TestFlatFileSnapshotRepository_LoadSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	repo, path := setupFlatFileTestRepo(t)

	raw := "GARBAGE:whatever\n" +
		"\n" +
		"USER:bob:secret:0\n" +
		"USER:broken\n" +
		"RESERVATION:bob:not-a-number:2025-06-01:14:00:2025-06-03:11:00\n" +
		"RESERVATION:bob:1:2025-06-01:14:2025-06-03:11:00\n" +
		"ROOM:5:Deluxe:2000.00\n" +
		"ROOM:x:Deluxe:2000.00\n"

	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(snap.Users) != 1 || snap.Users[0].Username != "bob" {
		t.Errorf("Users = %+v, want exactly bob", snap.Users)
	}
	if len(snap.Reservations) != 0 {
		t.Errorf("Reservations = %+v, want none", snap.Reservations)
	}
	if len(snap.Rooms) != 1 || snap.Rooms[0].Number != 5 {
		t.Errorf("Rooms = %+v, want exactly room 5", snap.Rooms)
	}
}

func TestFlatFileSnapshotRepository_SaveOverwrites(t *testing.T) {
	t.Parallel()

	repo, _ := setupFlatFileTestRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	smaller := domain.Snapshot{
		Users: []domain.User{{Username: "only", Password: "one", IsAdmin: false}},
	}
	if err := repo.Save(ctx, smaller); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(got, smaller) {
		t.Errorf("Save() did not fully overwrite\ngot:  %+v\nwant: %+v", got, smaller)
	}
}
