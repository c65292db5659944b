package model

// AdminStats is the aggregate dashboard payload for administrators.
type AdminStats struct {
	Overview struct {
		Total int `json:"total"`
		Today int `json:"today"`
	} `json:"overview"`
	StatusSummary struct {
		Pending   int `json:"pending"`
		Approved  int `json:"approved"`
		Rejected  int `json:"rejected"`
		Cancelled int `json:"cancelled"`
	} `json:"statusSummary"`
	TopRooms []TopRoom `json:"topRooms,omitempty"`
}

// TopRoom is one entry of the most-booked-rooms list.
type TopRoom struct {
	RoomName      string `json:"roomName"`
	Location      string `json:"location"`
	TotalBookings int    `json:"totalBookings"`
}

// UserStats is the personal dashboard payload for students and faculty.
type UserStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}

// Declined returns rejected and cancelled bookings combined, the figure the
// dashboard shows in its last card.
func (s UserStats) Declined() int {
	return s.Rejected + s.Cancelled
}
