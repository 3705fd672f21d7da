// Package models holds client-side data types.
package models

// Identity is what the server reports for the current access token.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
