// Package models defines the server-side persistence models: users, notes
// and the note attachments (links and media).
package models

// DefaultUserID is the well-known owner seeded at startup and used when a
// create request does not name an owner.
const DefaultUserID int64 = 1

// User is an account that owns notes. The note core only reads users.
type User struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}
