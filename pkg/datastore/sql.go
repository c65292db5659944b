package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"smartcampus/pkg/model"
)

const dbTimeLayout = "2006-01-02 15:04:05"

// CachedRoom is a room snapshot plus the time it was fetched from the API.
type CachedRoom struct {
	model.Room
	FetchedAt time.Time
}

// CachedBooking is a booking snapshot. The room name is denormalized so
// the list views render without a second lookup.
type CachedBooking struct {
	model.Booking
	FetchedAt time.Time
}

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type baseProvider struct {
	DB
}

func (p *baseProvider) ZeroTime() time.Time {
	return time.Time{}
}

func (p *baseProvider) Close() error {
	return nil
}

type nonTxProvider struct {
	baseProvider
}

type txProvider struct {
	baseProvider
	tx *sql.Tx
}

func (c *txProvider) Rollback() error {
	return c.tx.Rollback()
}

func (c *txProvider) Commit() error {
	return c.tx.Commit()
}

// ProviderFactory provides database access to the local cache.
type ProviderFactory struct {
	DB *sql.DB
}

func (sf ProviderFactory) NonTx() DataStore {
	return &nonTxProvider{
		baseProvider: baseProvider{
			DB: sf.DB,
		},
	}
}

func (sf ProviderFactory) Tx(ctx context.Context) (DataStoreTx, error) {
	tx, err := sf.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &txProvider{
		baseProvider: baseProvider{
			DB: tx,
		},
		tx: tx,
	}, nil
}

// NewProviderFactory opens (or creates) the SQLite cache and runs migrations.
func NewProviderFactory(dbPath string) (*ProviderFactory, error) {
	DB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("datastore: open DB: %w", err)
	}

	ctx := context.Background()

	// Enable WAL mode for better concurrent read performance
	if _, err := DB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("datastore: set WAL: %w", err)
	}
	if _, err := DB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("datastore: enable FK: %w", err)
	}
	// Set busy timeout to avoid "database is locked" under concurrency
	if _, err := DB.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("datastore: set busy_timeout: %w", err)
	}

	s := &ProviderFactory{DB: DB}
	if err := s.migrate(); err != nil {
		_ = DB.Close()
		return nil, fmt.Errorf("datastore: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *ProviderFactory) Close() error {
	return s.DB.Close()
}

func (s *ProviderFactory) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS rooms (
		id         TEXT NOT NULL PRIMARY KEY,
		name       TEXT NOT NULL,
		room_type  TEXT NOT NULL DEFAULT '',
		capacity   INTEGER NOT NULL DEFAULT 0,
		location   TEXT NOT NULL DEFAULT '',
		features   TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bookings (
		id            TEXT NOT NULL,
		scope         TEXT NOT NULL,
		room_id       TEXT NOT NULL DEFAULT '',
		room_name     TEXT NOT NULL DEFAULT '',
		resource_type TEXT NOT NULL DEFAULT '',
		start_time    TEXT NOT NULL,
		end_time      TEXT NOT NULL,
		purpose       TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT '',
		fetched_at    TEXT NOT NULL,
		PRIMARY KEY (id, scope)
	);
	`
	ctx := context.Background()
	if err := s.ensureSchemaMigrations(ctx); err != nil {
		return err
	}
	currentVersion, err := s.getSchemaVersion(ctx)
	if err != nil {
		return err
	}

	migrations := []struct {
		version      int
		statements   []string
		ignoreErrors bool
	}{
		{
			version:    1,
			statements: []string{schema},
		},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		for _, stmt := range m.statements {
			if err := s.execMigration(ctx, stmt, m.ignoreErrors); err != nil {
				return err
			}
		}
		if err := s.setSchemaVersion(ctx, m.version); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProviderFactory) ensureSchemaMigrations(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER NOT NULL)"); err != nil {
		return fmt.Errorf("datastore: create schema_migrations: %w", err)
	}
	var count int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		return fmt.Errorf("datastore: check schema_migrations: %w", err)
	}
	if count == 0 {
		if _, err := s.DB.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (0)"); err != nil {
			return fmt.Errorf("datastore: init schema_migrations: %w", err)
		}
	}
	return nil
}

func (s *ProviderFactory) getSchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.DB.QueryRowContext(ctx, "SELECT version FROM schema_migrations LIMIT 1").Scan(&version); err != nil {
		return 0, fmt.Errorf("datastore: read schema version: %w", err)
	}
	return version, nil
}

func (s *ProviderFactory) setSchemaVersion(ctx context.Context, version int) error {
	if _, err := s.DB.ExecContext(ctx, "UPDATE schema_migrations SET version = ?", version); err != nil {
		return fmt.Errorf("datastore: update schema version: %w", err)
	}
	return nil
}

func (s *ProviderFactory) execMigration(ctx context.Context, stmt string, ignoreErrors bool) error {
	if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
		if ignoreErrors {
			return nil
		}
		return fmt.Errorf("datastore: migrate: %w", err)
	}
	return nil
}

func formatDBTime(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

func parseDBTime(value string) (time.Time, error) {
	return time.ParseInLocation(dbTimeLayout, value, time.UTC)
}

// ---- Rooms ----

// ReplaceRooms swaps the cached room list for a fresh server snapshot.
func (s *baseProvider) ReplaceRooms(rooms []CachedRoom, fetchedAt time.Time) error {
	ctx := context.Background()
	if _, err := s.ExecContext(ctx, "DELETE FROM rooms"); err != nil {
		return fmt.Errorf("datastore: replace rooms: %w", err)
	}
	for _, r := range rooms {
		_, err := s.ExecContext(
			ctx,
			"INSERT INTO rooms (id, name, room_type, capacity, location, features, fetched_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			r.ID,
			r.Name,
			r.Type,
			r.Capacity,
			r.Location,
			strings.Join(r.Features, ","),
			formatDBTime(fetchedAt),
		)
		if err != nil {
			return fmt.Errorf("datastore: replace rooms: %w", err)
		}
	}
	return nil
}

// ListRooms returns all cached rooms ordered by name.
func (s *baseProvider) ListRooms() ([]CachedRoom, error) {
	rows, err := s.QueryContext(context.Background(),
		"SELECT id, name, room_type, capacity, location, features, fetched_at FROM rooms ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("datastore: list rooms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rooms []CachedRoom
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *r)
	}
	return rooms, rows.Err()
}

// GetRoom retrieves a cached room by ID, or nil when absent.
func (s *baseProvider) GetRoom(id string) (*CachedRoom, error) {
	row := s.QueryRowContext(context.Background(),
		"SELECT id, name, room_type, capacity, location, features, fetched_at FROM rooms WHERE id = ?", id)
	r, err := scanRoom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*CachedRoom, error) {
	r := &CachedRoom{}
	var features, fetchedAt string
	if err := row.Scan(&r.ID, &r.Name, &r.Type, &r.Capacity, &r.Location, &features, &fetchedAt); err != nil {
		return nil, fmt.Errorf("datastore: scan room: %w", err)
	}
	r.Features = splitFeatures(features)
	parsed, err := parseDBTime(fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("datastore: scan room: %w", err)
	}
	r.FetchedAt = parsed
	return r, nil
}

func splitFeatures(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// ---- Bookings ----

// ReplaceBookings swaps one scope's cached bookings for a fresh snapshot.
// The other scope is untouched.
func (s *baseProvider) ReplaceBookings(scope string, bookings []CachedBooking, fetchedAt time.Time) error {
	ctx := context.Background()
	if _, err := s.ExecContext(ctx, "DELETE FROM bookings WHERE scope = ?", scope); err != nil {
		return fmt.Errorf("datastore: replace bookings: %w", err)
	}
	for _, b := range bookings {
		_, err := s.ExecContext(
			ctx,
			`INSERT INTO bookings (id, scope, room_id, room_name, resource_type, start_time, end_time, purpose, status, fetched_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID,
			scope,
			b.Room.ID,
			b.Room.Name,
			b.ResourceType,
			formatDBTime(b.StartTime),
			formatDBTime(b.EndTime),
			b.Purpose,
			string(b.Status),
			formatDBTime(fetchedAt),
		)
		if err != nil {
			return fmt.Errorf("datastore: replace bookings: %w", err)
		}
	}
	return nil
}

// ListBookings returns one scope's cached bookings, newest start first.
func (s *baseProvider) ListBookings(scope string) ([]CachedBooking, error) {
	rows, err := s.QueryContext(context.Background(),
		`SELECT id, room_id, room_name, resource_type, start_time, end_time, purpose, status, fetched_at
		 FROM bookings WHERE scope = ? ORDER BY start_time DESC`, scope)
	if err != nil {
		return nil, fmt.Errorf("datastore: list bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []CachedBooking
	for rows.Next() {
		var b CachedBooking
		var start, end, status, fetchedAt string
		if err := rows.Scan(&b.ID, &b.Room.ID, &b.Room.Name, &b.ResourceType, &start, &end, &b.Purpose, &status, &fetchedAt); err != nil {
			return nil, fmt.Errorf("datastore: scan booking: %w", err)
		}
		b.Status = model.BookingStatus(status)
		if b.StartTime, err = parseDBTime(start); err != nil {
			return nil, fmt.Errorf("datastore: scan booking: %w", err)
		}
		if b.EndTime, err = parseDBTime(end); err != nil {
			return nil, fmt.Errorf("datastore: scan booking: %w", err)
		}
		if b.FetchedAt, err = parseDBTime(fetchedAt); err != nil {
			return nil, fmt.Errorf("datastore: scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// BookingsFetchedAt returns when the scope was last refreshed, or the zero
// time when the scope has never been cached.
func (s *baseProvider) BookingsFetchedAt(scope string) (time.Time, error) {
	var fetchedAt string
	err := s.QueryRowContext(context.Background(),
		"SELECT fetched_at FROM bookings WHERE scope = ? ORDER BY fetched_at DESC LIMIT 1", scope).
		Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("datastore: bookings fetched at: %w", err)
	}
	t, err := parseDBTime(fetchedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("datastore: bookings fetched at: %w", err)
	}
	return t, nil
}
