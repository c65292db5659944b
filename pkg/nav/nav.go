// Package nav derives the navigation surface and action permissions from
// the authenticated role. Everything here is pure: the UI renders exactly
// what these functions return and never re-checks roles itself.
package nav

import "smartcampus/pkg/model"

// Permission is a role-gated client action.
type Permission int

const (
	// PermManageRooms allows creating rooms and seeing the room admin view.
	PermManageRooms Permission = iota
	// PermDecideBookings allows approving or rejecting pending bookings.
	PermDecideBookings
	// PermViewAllBookings allows listing every user's bookings.
	PermViewAllBookings
	// PermCancelOwnBooking allows cancelling the caller's own bookings.
	PermCancelOwnBooking
)

// permissionMatrix maps roles to their allowed actions.
var permissionMatrix = map[model.Role]map[Permission]bool{
	model.RoleAdmin: {
		PermManageRooms:    true,
		PermDecideBookings: true,
		PermViewAllBookings: true,
	},
	model.RoleFaculty: {
		PermCancelOwnBooking: true,
	},
	model.RoleStudent: {
		PermCancelOwnBooking: true,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role model.Role, perm Permission) bool {
	perms, ok := permissionMatrix[role]
	if !ok {
		return false
	}
	return perms[perm]
}

// Entry is one sidebar destination. ID is stable across restarts; the UI
// maps it to an icon and a view constructor.
type Entry struct {
	ID    string
	Title string
}

// Stable entry IDs.
const (
	EntryDashboard = "dashboard"
	EntryBookings  = "bookings"
	EntryRooms     = "rooms"
)

// EntriesFor returns the sidebar entries the user may see, in render
// order. A nil user sees nothing.
func EntriesFor(user *model.User) []Entry {
	if user == nil {
		return nil
	}
	entries := []Entry{
		{ID: EntryDashboard, Title: "Dashboard"},
		{ID: EntryBookings, Title: "Bookings"},
	}
	if HasPermission(user.Role, PermManageRooms) {
		entries = append(entries, Entry{ID: EntryRooms, Title: "Rooms"})
	}
	return entries
}

// CanDecide reports whether the user may approve or reject the booking.
// Only pending bookings are decidable.
func CanDecide(user *model.User, b *model.Booking) bool {
	if user == nil || b == nil {
		return false
	}
	return HasPermission(user.Role, PermDecideBookings) && b.Decidable()
}

// CanCancel reports whether the user may cancel the booking from the
// personal bookings view.
func CanCancel(user *model.User, b *model.Booking) bool {
	if user == nil || b == nil {
		return false
	}
	return HasPermission(user.Role, PermCancelOwnBooking) && b.Cancellable()
}
