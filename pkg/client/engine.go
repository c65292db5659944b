// Package client coordinates the REST gateway and the local cache behind
// the data views. The UI reads snapshots and re-renders from callbacks; all
// network work happens off the UI goroutine.
package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"smartcampus/pkg/api"
	"smartcampus/pkg/datastore"
	"smartcampus/pkg/model"
)

// Engine owns the room and booking lists. Every refresh follows the same
// shape: serve the cached snapshot immediately, fetch from the API, then
// replace both the in-memory list and the cache scope with the server's
// answer. The backend stays authoritative; the cache only covers startup
// and offline gaps.
type Engine struct {
	mu          sync.RWMutex
	rooms       []model.Room
	myBookings  []model.Booking
	allBookings []model.Booking

	api   *api.Client
	cache datastore.DataProviderFactory // may be nil

	// OnRoomsUpdate fires with the new room list after any room refresh.
	OnRoomsUpdate func([]model.Room)
	// OnBookingsUpdate fires with the refreshed scope and its bookings.
	OnBookingsUpdate func(scope string, bookings []model.Booking)
	// OnNotice surfaces operation outcomes (toasts).
	OnNotice func(success bool, message string)
}

// NewEngine creates the engine. cache may be nil to run without a local
// cache.
func NewEngine(apiClient *api.Client, cache datastore.DataProviderFactory) *Engine {
	return &Engine{api: apiClient, cache: cache}
}

// Rooms returns the current room snapshot.
func (e *Engine) Rooms() []model.Room {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rooms
}

// Bookings returns the current snapshot for a scope.
func (e *Engine) Bookings(scope string) []model.Booking {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if scope == datastore.ScopeAll {
		return e.allBookings
	}
	return e.myBookings
}

// LoadCached populates the in-memory snapshots from the cache without
// touching the network. Called once before the first protected view
// renders; an empty cache is normal.
func (e *Engine) LoadCached() {
	if e.cache == nil {
		return
	}
	ds := e.cache.NonTx()

	if cached, err := ds.ListRooms(); err != nil {
		slog.Warn("load cached rooms", "err", err)
	} else if len(cached) > 0 {
		rooms := make([]model.Room, len(cached))
		for i, c := range cached {
			rooms[i] = c.Room
		}
		e.setRooms(rooms)
	}

	for _, scope := range []string{datastore.ScopeMine, datastore.ScopeAll} {
		cached, err := ds.ListBookings(scope)
		if err != nil {
			slog.Warn("load cached bookings", "scope", scope, "err", err)
			continue
		}
		if len(cached) == 0 {
			continue
		}
		bookings := make([]model.Booking, len(cached))
		for i, c := range cached {
			bookings[i] = c.Booking
		}
		e.setBookings(scope, bookings)
	}
}

// RefreshRooms fetches the room list. On failure the last snapshot stays
// and the error is surfaced; true means the snapshot is fresh.
func (e *Engine) RefreshRooms(ctx context.Context) bool {
	rooms, err := e.api.ListRooms(ctx)
	if err != nil {
		slog.Warn("refresh rooms", "err", err)
		e.notify(false, api.UserMessage(err))
		return false
	}

	e.setRooms(rooms)
	e.cacheRooms(ctx, rooms)
	if e.OnRoomsUpdate != nil {
		e.OnRoomsUpdate(rooms)
	}
	return true
}

// RefreshBookings fetches one booking scope.
func (e *Engine) RefreshBookings(ctx context.Context, scope string) bool {
	var bookings []model.Booking
	var err error
	if scope == datastore.ScopeAll {
		bookings, err = e.api.AllBookings(ctx)
	} else {
		bookings, err = e.api.MyBookings(ctx)
	}
	if err != nil {
		slog.Warn("refresh bookings", "scope", scope, "err", err)
		e.notify(false, api.UserMessage(err))
		return false
	}

	e.setBookings(scope, bookings)
	e.cacheBookings(ctx, scope, bookings)
	if e.OnBookingsUpdate != nil {
		e.OnBookingsUpdate(scope, bookings)
	}
	return true
}

// CreateRoom creates a room and refreshes the list on success.
func (e *Engine) CreateRoom(ctx context.Context, room model.Room) bool {
	if err := room.Validate(); err != nil {
		e.notify(false, err.Error())
		return false
	}
	if _, err := e.api.CreateRoom(ctx, room); err != nil {
		slog.Warn("create room", "name", room.Name, "err", err)
		e.notify(false, api.UserMessage(err))
		return false
	}
	e.notify(true, "Room created")
	return e.RefreshRooms(ctx)
}

// CreateBooking submits a booking request and refreshes the personal scope.
func (e *Engine) CreateBooking(ctx context.Context, req api.CreateBookingRequest) bool {
	if _, err := e.api.CreateBooking(ctx, req); err != nil {
		slog.Warn("create booking", "room", req.RoomID, "err", err)
		e.notify(false, api.UserMessage(err))
		return false
	}
	e.notify(true, "Booking requested")
	return e.RefreshBookings(ctx, datastore.ScopeMine)
}

// DecideBooking approves or rejects a pending booking and refreshes the
// admin scope.
func (e *Engine) DecideBooking(ctx context.Context, id string, status model.BookingStatus) bool {
	if err := e.api.UpdateBookingStatus(ctx, id, status); err != nil {
		slog.Warn("decide booking", "id", id, "status", status, "err", err)
		e.notify(false, api.UserMessage(err))
		return false
	}
	e.notify(true, "Booking "+string(status))
	return e.RefreshBookings(ctx, datastore.ScopeAll)
}

// CancelBooking cancels one of the caller's bookings and refreshes the
// personal scope.
func (e *Engine) CancelBooking(ctx context.Context, id string) bool {
	if err := e.api.CancelBooking(ctx, id); err != nil {
		slog.Warn("cancel booking", "id", id, "err", err)
		e.notify(false, api.UserMessage(err))
		return false
	}
	e.notify(true, "Booking cancelled")
	return e.RefreshBookings(ctx, datastore.ScopeMine)
}

// AdminDashboard fetches the admin statistics. Stats are never cached.
func (e *Engine) AdminDashboard(ctx context.Context) (*model.AdminStats, error) {
	return e.api.AdminDashboard(ctx)
}

// MyStats fetches the caller's booking statistics.
func (e *Engine) MyStats(ctx context.Context) (*model.UserStats, error) {
	return e.api.MyStats(ctx)
}

// Clear drops the in-memory snapshots. Called on logout so the next login
// does not flash the previous account's data.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.rooms = nil
	e.myBookings = nil
	e.allBookings = nil
	e.mu.Unlock()
}

func (e *Engine) setRooms(rooms []model.Room) {
	e.mu.Lock()
	e.rooms = rooms
	e.mu.Unlock()
}

func (e *Engine) setBookings(scope string, bookings []model.Booking) {
	e.mu.Lock()
	if scope == datastore.ScopeAll {
		e.allBookings = bookings
	} else {
		e.myBookings = bookings
	}
	e.mu.Unlock()
}

func (e *Engine) cacheRooms(ctx context.Context, rooms []model.Room) {
	if e.cache == nil {
		return
	}
	fetchedAt := time.Now().UTC()
	cached := make([]datastore.CachedRoom, len(rooms))
	for i, r := range rooms {
		cached[i] = datastore.CachedRoom{Room: r, FetchedAt: fetchedAt}
	}
	tx, err := e.cache.Tx(ctx)
	if err != nil {
		slog.Warn("cache rooms", "err", err)
		return
	}
	if err := tx.ReplaceRooms(cached, fetchedAt); err != nil {
		slog.Warn("cache rooms", "err", err)
		_ = tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		slog.Warn("cache rooms", "err", err)
	}
}

func (e *Engine) cacheBookings(ctx context.Context, scope string, bookings []model.Booking) {
	if e.cache == nil {
		return
	}
	fetchedAt := time.Now().UTC()
	cached := make([]datastore.CachedBooking, len(bookings))
	for i, b := range bookings {
		cached[i] = datastore.CachedBooking{Booking: b, FetchedAt: fetchedAt}
	}
	tx, err := e.cache.Tx(ctx)
	if err != nil {
		slog.Warn("cache bookings", "scope", scope, "err", err)
		return
	}
	if err := tx.ReplaceBookings(scope, cached, fetchedAt); err != nil {
		slog.Warn("cache bookings", "scope", scope, "err", err)
		_ = tx.Rollback()
		return
	}
	if err := tx.Commit(); err != nil {
		slog.Warn("cache bookings", "scope", scope, "err", err)
	}
}

func (e *Engine) notify(success bool, message string) {
	if e.OnNotice != nil {
		e.OnNotice(success, message)
	}
}
