package domain

import "time"

// UserRole tags a user with its helpdesk role.
type UserRole string

const (
	UserRoleRegular  UserRole = "REGULAR"
	UserRoleOperator UserRole = "OPERATOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

// UserStatus represents lifecycle states for a user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is the domain model for everyone who touches tickets: regular
// requesters, operators who handle them, and admins.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff reports whether the user handles tickets rather than filing them.
func (u *User) IsStaff() bool {
	return u.Role == UserRoleOperator || u.Role == UserRoleAdmin
}
