package models

import "strings"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is the demo identity. There is no credential record behind it: a
// User is fabricated at login/registration and lives only in the durable
// store under KeyUser. Do not reuse this model for real authentication.
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	Name  string   `json:"name"`
}

// RoleForEmail derives the demo role: any email containing "admin" gets
// the admin role. This is the observable contract the rest of the system
// relies on, not an oversight.
func RoleForEmail(email string) UserRole {
	if strings.Contains(email, "admin") {
		return UserRoleAdmin
	}
	return UserRoleUser
}

// LocalPart returns the part of an email address before the first "@",
// or the whole string when there is none.
func LocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}
