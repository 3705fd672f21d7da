// Package users is the credential store: user records keyed by a unique,
// case-sensitive email.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository persists users.
//
// Contract:
//   - Create assigns ID and CreatedAt; a duplicate email fails with
//     common.ErrorAlreadyExists.
//   - GetUserByEmail returns common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
