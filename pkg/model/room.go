package model

import (
	"errors"
	"strings"
)

// Room types offered by the booking backend.
const (
	RoomTypeClassroom = "classroom"
	RoomTypeLab       = "lab"
	RoomTypeHall      = "hall"
	RoomTypeMeeting   = "meeting_room"
)

var ErrRoomNameEmpty = errors.New("room name must not be empty")
var ErrRoomCapacityInvalid = errors.New("room capacity must be a positive number")
var ErrRoomTypeInvalid = errors.New("room type must be classroom, lab, hall, or meeting_room")

// Room is owned by the API; the client only lists and (for admins) creates.
type Room struct {
	ID       string   `json:"_id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Capacity int      `json:"capacity"`
	Location string   `json:"location"`
	Features []string `json:"features,omitempty"`
}

// RoomTypes returns the selectable room types in display order.
func RoomTypes() []string {
	return []string{RoomTypeClassroom, RoomTypeLab, RoomTypeHall, RoomTypeMeeting}
}

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeClassroom, RoomTypeLab, RoomTypeHall, RoomTypeMeeting:
		return true
	}
	return false
}

// Validate checks the fields an admin fills in when creating a room.
func (r *Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrRoomNameEmpty
	}
	if !ValidRoomType(r.Type) {
		return ErrRoomTypeInvalid
	}
	if r.Capacity <= 0 {
		return ErrRoomCapacityInvalid
	}
	return nil
}

// ParseFeatures splits the comma-separated features field from the room form
// into a cleaned list, mirroring how the backend stores them.
func ParseFeatures(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
