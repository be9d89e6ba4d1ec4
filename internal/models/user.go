// Package models contains the domain model of a staff account, including
// the credential hash used by the authentication service.
package models

import "time"

// User represents a staff member of the reseller.
type User struct {
	UUID         string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"` // bcrypt hash, never serialized
	Role         string    `json:"role"` // admin or operator
	CreatedAt    time.Time `json:"created_at"`
}
