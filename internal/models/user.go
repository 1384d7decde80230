package models

import "time"

// UserRole represents the available account roles. Roles are stored and carried
// in session claims but do not currently gate any operation.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleCoach UserRole = "coach"
	RoleUser  UserRole = "user"
)

// Valid returns true when the role is a supported value.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleCoach, RoleUser:
		return true
	default:
		return false
	}
}

// User represents an application account stored in the users table. The
// password is held only as a bcrypt hash; plaintext is never stored or logged.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
