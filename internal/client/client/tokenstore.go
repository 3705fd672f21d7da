package client

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
)

// TokenStore holds the current access token on the client. An empty token
// means none is stored.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore keeps the token in process memory.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) AccessToken(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetAccessToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

// MetadataTokenStore persists the token in the local metadata table so a
// session survives CLI restarts.
type MetadataTokenStore struct {
	db *sql.DB
}

func NewMetadataTokenStore(db *sql.DB) *MetadataTokenStore {
	return &MetadataTokenStore{db: db}
}

func (s *MetadataTokenStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *MetadataTokenStore) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, metadata.KeyAccessToken)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *MetadataTokenStore) SetAccessToken(ctx context.Context, token string) error {
	return s.repo(s.db).Set(ctx, metadata.KeyAccessToken, []byte(token))
}

// Clear removes the access token only. The remembered email outlives a
// rejected refresh so the next login prompt can still offer it.
func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, metadata.KeyAccessToken)
}
