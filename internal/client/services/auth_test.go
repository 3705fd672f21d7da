package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/authkeeper/internal/client/client"
	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client. Login and Logout go through a real
// token store so session state lands in the database like in production.
type fakeClient struct {
	tokens client.TokenStore

	SignupMsg string
	SignupErr error
	LoginErr  error
	MeRet     *models.Identity
	MeErr     error
	LogoutErr error
	PingErr   error
	CloseErr  error

	signupName, signupEmail string
	signupPass              []byte
	closed                  bool
}

func (f *fakeClient) Close() error {
	f.closed = true
	return f.CloseErr
}

func (f *fakeClient) Signup(_ context.Context, name, email string, password []byte) (string, error) {
	f.signupName, f.signupEmail = name, email
	f.signupPass = append([]byte(nil), password...)
	return f.SignupMsg, f.SignupErr
}

func (f *fakeClient) Login(ctx context.Context, _ string, _ []byte) error {
	if f.LoginErr != nil {
		return f.LoginErr
	}
	return f.tokens.SetAccessToken(ctx, "access")
}

func (f *fakeClient) Me(context.Context) (*models.Identity, error) { return f.MeRet, f.MeErr }

func (f *fakeClient) Logout(ctx context.Context) error {
	if err := f.tokens.Clear(ctx); err != nil {
		return err
	}
	return f.LogoutErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func newService(t *testing.T) (AuthService, *fakeClient) {
	t.Helper()
	db := setupDB(t)
	fc := &fakeClient{tokens: client.NewMetadataTokenStore(db)}
	return NewAuthService(fc, db), fc
}

// ---- tests ----

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, fc := newService(t)
	fc.SignupMsg = "User registered successfully"

	msg, err := svc.Signup(ctx, "Ann", "ann@example.com", []byte("secret123"))
	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", msg)
	assert.Equal(t, "Ann", fc.signupName)
	assert.Equal(t, "ann@example.com", fc.signupEmail)
	assert.Equal(t, []byte("secret123"), fc.signupPass)

	// signup does not start a session
	ok, err := svc.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignup_Error(t *testing.T) {
	svc, fc := newService(t)
	fc.SignupErr = client.ErrBadRequest

	_, err := svc.Signup(context.Background(), "Ann", "ann@example.com", []byte("x"))
	require.ErrorIs(t, err, client.ErrBadRequest)
}

func TestLogin_SavesSessionAndEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	email, err := svc.LastEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)

	require.NoError(t, svc.Login(ctx, "ann@example.com", []byte("secret123")))

	ok, err := svc.HasSession(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	email, err = svc.LastEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)
}

func TestLogin_Error(t *testing.T) {
	ctx := context.Background()
	svc, fc := newService(t)
	fc.LoginErr = client.ErrUnauthorized

	err := svc.Login(ctx, "ann@example.com", []byte("bad"))
	require.ErrorIs(t, err, client.ErrUnauthorized)

	email, err := svc.LastEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestMe(t *testing.T) {
	svc, fc := newService(t)
	fc.MeRet = &models.Identity{UserID: "u1", Email: "ann@example.com"}

	id, err := svc.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)

	fc.MeErr = client.ErrUnauthorized
	_, err = svc.Me(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestLogout_ClearsSessionEvenOnError(t *testing.T) {
	ctx := context.Background()
	svc, fc := newService(t)
	require.NoError(t, svc.Login(ctx, "ann@example.com", []byte("secret123")))

	fc.LogoutErr = client.ErrUnavailable
	err := svc.Logout(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)

	ok, err := svc.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	email, err := svc.LastEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestDroppedToken_KeepsLastEmail(t *testing.T) {
	ctx := context.Background()
	svc, fc := newService(t)
	require.NoError(t, svc.Login(ctx, "ann@example.com", []byte("secret123")))

	// what the client does when a silent refresh is rejected
	require.NoError(t, fc.tokens.Clear(ctx))

	ok, err := svc.HasSession(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	email, err := svc.LastEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", email)
}

func TestPingAndClose(t *testing.T) {
	svc, fc := newService(t)

	require.NoError(t, svc.Ping(context.Background()))
	fc.PingErr = errors.New("down")
	require.EqualError(t, svc.Ping(context.Background()), "down")

	fc.CloseErr = errors.New("close")
	require.EqualError(t, svc.Close(context.Background()), "close")
	assert.True(t, fc.closed)
}
