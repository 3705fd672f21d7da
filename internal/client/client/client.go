package client

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
)

// Client is the API contract of the authentication backend.
type Client interface {
	Close() error
	Signup(ctx context.Context, name, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) error
	Me(ctx context.Context) (*models.Identity, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}
