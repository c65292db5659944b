package model

import "encoding/json"

// Role represents a user's permission level on campus.
type Role int

const (
	RoleStudent Role = iota // Default role, can book rooms and manage own bookings
	RoleFaculty             // Same booking rights as students, separate reporting
	RoleAdmin               // Full control: manage rooms, approve/reject bookings
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleFaculty:
		return "faculty"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole converts a string to a Role.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "faculty":
		return RoleFaculty
	default:
		return RoleStudent
	}
}

// Valid returns true if the role is a recognised value (Student, Faculty, or Admin).
func (r Role) Valid() bool {
	return r >= RoleStudent && r <= RoleAdmin
}

// The campus API speaks string roles on the wire.

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}
