package datastore

import (
	"context"
	"time"
)

// Booking scopes. The personal list and the admin list are cached
// separately because the backend computes them per caller.
const (
	ScopeMine = "mine"
	ScopeAll  = "all"
)

type DataProviderFactory interface {
	NonTx() DataStore
	Tx(context.Context) (DataStoreTx, error)
}

type DataStoreTx interface {
	DataStore
	Rollback() error
	Commit() error
}

// DataStore is the local read cache behind the rooms and bookings views.
// The backend stays authoritative; the cache only bridges startup and
// offline gaps, so writes always replace a whole scope with a fresh
// server snapshot.
type DataStore interface {
	ConfigReadProvider

	RoomReadProvider
	RoomWriteProvider

	BookingReadProvider
	BookingWriteProvider
}

// Compile-time check: ProviderFactory implements DataProviderFactory.
var _ DataProviderFactory = (*ProviderFactory)(nil)

type ConfigReadProvider interface {
	ZeroTime() time.Time
	Close() error
}

type RoomReadProvider interface {
	ListRooms() ([]CachedRoom, error)
	GetRoom(id string) (*CachedRoom, error)
}

type RoomWriteProvider interface {
	ReplaceRooms(rooms []CachedRoom, fetchedAt time.Time) error
}

type BookingReadProvider interface {
	ListBookings(scope string) ([]CachedBooking, error)
	BookingsFetchedAt(scope string) (time.Time, error)
}

type BookingWriteProvider interface {
	ReplaceBookings(scope string, bookings []CachedBooking, fetchedAt time.Time) error
}
