package datastore_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"smartcampus/pkg/datastore"
	"smartcampus/pkg/model"
)

func NewTestSqlConn(t *testing.T) (*datastore.ProviderFactory, error) {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	st, err := datastore.NewProviderFactory(dbPath)
	if err != nil {
		return nil, fmt.Errorf("store_test: failed to open db: %w", err)
	}

	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			fmt.Printf("Error closing database: %v\n", err)
		}
	})

	return st, nil
}

func testRooms(fetchedAt time.Time) []datastore.CachedRoom {
	return []datastore.CachedRoom{
		{
			Room: model.Room{
				ID:       "r1",
				Name:     "Physics Lab",
				Type:     model.RoomTypeLab,
				Capacity: 24,
				Location: "Building B",
				Features: []string{"projector", "whiteboard"},
			},
			FetchedAt: fetchedAt,
		},
		{
			Room: model.Room{
				ID:       "r2",
				Name:     "Main Hall",
				Type:     model.RoomTypeHall,
				Capacity: 300,
				Location: "Building A",
			},
			FetchedAt: fetchedAt,
		},
	}
}

func testBookings(fetchedAt time.Time) []datastore.CachedBooking {
	return []datastore.CachedBooking{
		{
			Booking: model.Booking{
				ID:           "b1",
				Room:         model.Room{ID: "r1", Name: "Physics Lab"},
				ResourceType: "Room",
				StartTime:    time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC),
				Purpose:      "Lab session",
				Status:       model.BookingApproved,
			},
			FetchedAt: fetchedAt,
		},
		{
			Booking: model.Booking{
				ID:           "b2",
				Room:         model.Room{ID: "r2", Name: "Main Hall"},
				ResourceType: "Room",
				StartTime:    time.Date(2026, 9, 2, 14, 0, 0, 0, time.UTC),
				EndTime:      time.Date(2026, 9, 2, 16, 0, 0, 0, time.UTC),
				Purpose:      "Guest lecture",
				Status:       model.BookingPending,
			},
			FetchedAt: fetchedAt,
		},
	}
}

func TestZeroTime(t *testing.T) {
	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}

	if diff := cmp.Diff(time.Time{}, store.NonTx().ZeroTime()); diff != "" {
		t.Errorf("store.NonTx().ZeroTime mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceAndListRooms(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ds := store.NonTx()
	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	if err := ds.ReplaceRooms(testRooms(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("ReplaceRooms: %v", err)
	}

	got, err := ds.ListRooms()
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}

	// Ordered by name.
	want := []datastore.CachedRoom{
		{
			Room:      model.Room{ID: "r2", Name: "Main Hall", Type: model.RoomTypeHall, Capacity: 300, Location: "Building A"},
			FetchedAt: fetchedAt,
		},
		{
			Room:      model.Room{ID: "r1", Name: "Physics Lab", Type: model.RoomTypeLab, Capacity: 24, Location: "Building B", Features: []string{"projector", "whiteboard"}},
			FetchedAt: fetchedAt,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListRooms mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceRoomsDropsStaleEntries(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ds := store.NonTx()
	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	if err := ds.ReplaceRooms(testRooms(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("seed rooms: %v", err)
	}

	later := fetchedAt.Add(time.Hour)
	fresh := testRooms(later)[:1]
	if err := ds.ReplaceRooms(fresh, later); err != nil {
		t.Fatalf("ReplaceRooms: %v", err)
	}

	got, err := ds.ListRooms()
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("ListRooms after replace = %+v, want only r1", got)
	}

	if stale, err := ds.GetRoom("r2"); err != nil || stale != nil {
		t.Errorf("GetRoom(r2) = (%+v, %v), want absent", stale, err)
	}
}

func TestGetRoom(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ds := store.NonTx()
	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	if err := ds.ReplaceRooms(testRooms(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("seed rooms: %v", err)
	}

	got, err := ds.GetRoom("r1")
	if err != nil {
		t.Fatalf("GetRoom: %v", err)
	}
	if got == nil || got.Name != "Physics Lab" {
		t.Fatalf("GetRoom(r1) = %+v, want Physics Lab", got)
	}
	if diff := cmp.Diff([]string{"projector", "whiteboard"}, got.Features); diff != "" {
		t.Errorf("features mismatch (-want +got):\n%s", diff)
	}

	missing, err := ds.GetRoom("nope")
	if err != nil {
		t.Fatalf("GetRoom(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("GetRoom(missing) = %+v, want nil", missing)
	}
}

func TestReplaceAndListBookings(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ds := store.NonTx()
	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	if err := ds.ReplaceBookings(datastore.ScopeMine, testBookings(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("ReplaceBookings: %v", err)
	}

	got, err := ds.ListBookings(datastore.ScopeMine)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListBookings returned %d bookings, want 2", len(got))
	}
	// Newest start first.
	if got[0].ID != "b2" || got[1].ID != "b1" {
		t.Errorf("order = [%s %s], want [b2 b1]", got[0].ID, got[1].ID)
	}
	if got[0].Status != model.BookingPending {
		t.Errorf("status = %q, want pending", got[0].Status)
	}
	if got[0].RoomName() != "Main Hall" {
		t.Errorf("RoomName = %q, want the denormalized name", got[0].RoomName())
	}
}

func TestBookingScopesAreIndependent(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ds := store.NonTx()
	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	all := testBookings(fetchedAt)
	mine := all[:1]
	if err := ds.ReplaceBookings(datastore.ScopeAll, all, fetchedAt); err != nil {
		t.Fatalf("seed all scope: %v", err)
	}
	if err := ds.ReplaceBookings(datastore.ScopeMine, mine, fetchedAt); err != nil {
		t.Fatalf("seed mine scope: %v", err)
	}

	// Replacing one scope leaves the other alone.
	if err := ds.ReplaceBookings(datastore.ScopeMine, nil, fetchedAt.Add(time.Hour)); err != nil {
		t.Fatalf("clear mine scope: %v", err)
	}

	gotMine, err := ds.ListBookings(datastore.ScopeMine)
	if err != nil {
		t.Fatalf("ListBookings(mine): %v", err)
	}
	if len(gotMine) != 0 {
		t.Errorf("mine scope has %d bookings, want 0", len(gotMine))
	}

	gotAll, err := ds.ListBookings(datastore.ScopeAll)
	if err != nil {
		t.Fatalf("ListBookings(all): %v", err)
	}
	if len(gotAll) != 2 {
		t.Errorf("all scope has %d bookings, want 2", len(gotAll))
	}
}

func TestBookingsFetchedAt(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ds := store.NonTx()

	never, err := ds.BookingsFetchedAt(datastore.ScopeMine)
	if err != nil {
		t.Fatalf("BookingsFetchedAt: %v", err)
	}
	if !never.IsZero() {
		t.Errorf("uncached scope fetched at %v, want zero time", never)
	}

	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if err := ds.ReplaceBookings(datastore.ScopeMine, testBookings(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("ReplaceBookings: %v", err)
	}

	got, err := ds.BookingsFetchedAt(datastore.ScopeMine)
	if err != nil {
		t.Fatalf("BookingsFetchedAt: %v", err)
	}
	if diff := cmp.Diff(fetchedAt, got); diff != "" {
		t.Errorf("fetched at mismatch (-want +got):\n%s", diff)
	}
}

func TestTxCommitAndRollback(t *testing.T) {
	t.Parallel()

	store, err := NewTestSqlConn(t)
	if err != nil {
		t.Fatalf("failed to open test connection: %v", err)
	}
	ctx := context.Background()
	fetchedAt := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	tx, err := store.Tx(ctx)
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if err := tx.ReplaceRooms(testRooms(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("ReplaceRooms in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	rooms, err := store.NonTx().ListRooms()
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("rolled back write left %d rooms", len(rooms))
	}

	tx, err = store.Tx(ctx)
	if err != nil {
		t.Fatalf("Tx: %v", err)
	}
	if err := tx.ReplaceRooms(testRooms(fetchedAt), fetchedAt); err != nil {
		t.Fatalf("ReplaceRooms in tx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	rooms, err = store.NonTx().ListRooms()
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("committed write left %d rooms, want 2", len(rooms))
	}
}
