package domain

import (
	"errors"
	"strings"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// validRoles is the closed set of permission labels a user may carry.
var validRoles = map[string]struct{}{
	RoleAdmin:  {},
	RoleEditor: {},
	RoleViewer: {},
}

// IsValidRole reports whether role names a member of the role set.
// Matching is case-insensitive; storage always uses the lower-case form.
func IsValidRole(role string) bool {
	_, ok := validRoles[strings.ToLower(role)]
	return ok
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64  `json:"id" bson:"_id"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         string `json:"role" bson:"role"`
}
