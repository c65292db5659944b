package nav

import (
	"testing"

	"smartcampus/pkg/model"
)

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestEntriesFor(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want []string
	}{
		{"nil user", nil, nil},
		{"student", &model.User{Role: model.RoleStudent}, []string{EntryDashboard, EntryBookings}},
		{"faculty", &model.User{Role: model.RoleFaculty}, []string{EntryDashboard, EntryBookings}},
		{"admin", &model.User{Role: model.RoleAdmin}, []string{EntryDashboard, EntryBookings, EntryRooms}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := entryIDs(EntriesFor(tt.user))
			if len(got) != len(tt.want) {
				t.Fatalf("EntriesFor = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role model.Role
		perm Permission
		want bool
	}{
		{model.RoleAdmin, PermManageRooms, true},
		{model.RoleAdmin, PermDecideBookings, true},
		{model.RoleAdmin, PermCancelOwnBooking, false},
		{model.RoleFaculty, PermManageRooms, false},
		{model.RoleFaculty, PermCancelOwnBooking, true},
		{model.RoleStudent, PermManageRooms, false},
		{model.RoleStudent, PermViewAllBookings, false},
		{model.RoleStudent, PermCancelOwnBooking, true},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%v, %d) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestCanDecide(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	student := &model.User{Role: model.RoleStudent}
	pending := &model.Booking{Status: model.BookingPending}
	approved := &model.Booking{Status: model.BookingApproved}

	if !CanDecide(admin, pending) {
		t.Error("admin should decide a pending booking")
	}
	if CanDecide(admin, approved) {
		t.Error("settled bookings are not decidable")
	}
	if CanDecide(student, pending) {
		t.Error("students never decide bookings")
	}
	if CanDecide(nil, pending) || CanDecide(admin, nil) {
		t.Error("nil inputs never grant a decision")
	}
}

func TestCanCancel(t *testing.T) {
	student := &model.User{Role: model.RoleStudent}
	admin := &model.User{Role: model.RoleAdmin}

	if !CanCancel(student, &model.Booking{Status: model.BookingPending}) {
		t.Error("student should cancel a pending booking")
	}
	if !CanCancel(student, &model.Booking{Status: model.BookingApproved}) {
		t.Error("student should cancel an approved booking")
	}
	if CanCancel(student, &model.Booking{Status: model.BookingCancelled}) {
		t.Error("a cancelled booking cannot be cancelled again")
	}
	if CanCancel(student, &model.Booking{Status: model.BookingRejected}) {
		t.Error("a rejected booking cannot be cancelled")
	}
	if CanCancel(admin, &model.Booking{Status: model.BookingPending}) {
		t.Error("admins decide bookings, they do not cancel from the personal view")
	}
}
