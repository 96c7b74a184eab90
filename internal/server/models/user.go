// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. The password is stored only as a salted
// bcrypt hash; Username is globally unique and immutable after creation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash []byte    `json:"-"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}
