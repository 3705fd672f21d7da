// Package services contains application services for the AuthKeeper client.
// This file defines the authentication service used by the CLI: signup,
// login, identity lookup, logout and a liveness check, plus the bits of
// session state kept in the local metadata store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create a user on the server; does not log in.
//   - Login: authenticate and remember the email for the next prompt.
//   - Me: return the identity behind the current session.
//   - Logout: end the session on the server and locally.
//   - HasSession: report whether an access token is stored.
//   - LastEmail: the email of the last successful login, or "".
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Signup(ctx context.Context, name, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) error
	Me(ctx context.Context) (*models.Identity, error)
	Logout(ctx context.Context) error
	HasSession(ctx context.Context) (bool, error)
	LastEmail(ctx context.Context) (string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and
// local database.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Signup(ctx context.Context, name, email string, password []byte) (string, error) {
	msg, err := a.client.Signup(ctx, name, email, password)
	if err != nil {
		return "", fmt.Errorf("signup error: %w", err)
	}
	return msg, nil
}

// Login authenticates against the server. The access token is persisted by
// the client's token store; the email is saved here.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	if err := a.client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.getMetadataRepo().Set(ctx, metadata.KeyEmail, []byte(email)); err != nil {
		return fmt.Errorf("save email: %w", err)
	}
	return nil
}

func (a *authService) Me(ctx context.Context) (*models.Identity, error) {
	return a.client.Me(ctx)
}

// Logout always drops the local session, even if the server is unreachable.
// Unlike a failed refresh, it also forgets the remembered email.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	if ferr := a.forgetSession(ctx); ferr != nil && err == nil {
		err = fmt.Errorf("forget session: %w", ferr)
	}
	return err
}

func (a *authService) forgetSession(ctx context.Context) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := metadata.NewSQLiteRepository(tx)
		if err := r.Delete(ctx, metadata.KeyAccessToken); err != nil {
			return err
		}
		return r.Delete(ctx, metadata.KeyEmail)
	})
}

func (a *authService) HasSession(ctx context.Context) (bool, error) {
	v, err := a.getMetadataRepo().Get(ctx, metadata.KeyAccessToken)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(v) > 0, nil
}

func (a *authService) LastEmail(ctx context.Context) (string, error) {
	v, err := a.getMetadataRepo().Get(ctx, metadata.KeyEmail)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
