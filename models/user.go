package models

import "time"

// Role gates mutating operations. Viewers can only read.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCaptain Role = "captain"
	RoleViewer  Role = "viewer"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleCaptain || r == RoleViewer
}

// User is an account that can sign in. PasswordHash never leaves the
// server.
type User struct {
	ID           string    `json:"id" bson:"id"`
	Email        string    `json:"email" bson:"email"`
	DisplayName  string    `json:"display_name" bson:"display_name"`
	Role         Role      `json:"role" bson:"role"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Principal is the acting identity attached to every request.
type Principal struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}
