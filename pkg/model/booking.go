package model

import "time"

// BookingStatus is computed exclusively by the backend; the client only
// requests transitions and renders the result.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking is a reservation of a room for a time window.
//
// Room is populated by the API on list endpoints; on some responses only the
// reference survives, so render code must tolerate a zero Room.
type Booking struct {
	ID           string        `json:"_id"`
	Room         Room          `json:"room"`
	ResourceType string        `json:"resourceType"`
	StartTime    time.Time     `json:"startTime"`
	EndTime      time.Time     `json:"endTime"`
	Purpose      string        `json:"purpose"`
	Status       BookingStatus `json:"status"`
}

// Decidable reports whether an admin can still approve or reject the booking.
func (b *Booking) Decidable() bool {
	return b.Status == BookingPending
}

// Cancellable reports whether the owner can still cancel the booking.
func (b *Booking) Cancellable() bool {
	return b.Status == BookingPending || b.Status == BookingApproved
}

// RoomName returns the populated room name or a placeholder.
func (b *Booking) RoomName() string {
	if b.Room.Name == "" {
		return "Unknown Room"
	}
	return b.Room.Name
}
