// Package models holds server-side persistence types.
package models

import "time"

// User is a registered account. Email is unique and matched exactly
// (case-sensitive). PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
