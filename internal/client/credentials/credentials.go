// Package credentials persists the signed-in session pair (bearer token and
// wallet address) in local metadata storage. The pair is written together and
// cleared together; a half-written pair is never visible.
package credentials

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ehrdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ehrdesk/internal/common"
)

// Credentials is the persisted part of a session.
type Credentials struct {
	Token   string
	Address string
}

// Empty reports whether either half of the pair is missing.
func (c Credentials) Empty() bool {
	return c.Token == "" || c.Address == ""
}

// Store reads and writes Credentials.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, c Credentials) error
	Purge(ctx context.Context) error
}

type store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) Store {
	return &store{repo: repo}
}

func (s *store) Load(ctx context.Context) (Credentials, error) {
	token, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("load token: %w", err)
	}
	address, err := s.repo.Get(ctx, common.AddressKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("load address: %w", err)
	}
	return Credentials{Token: string(token), Address: string(address)}, nil
}

func (s *store) Token(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, common.TokenKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(token), nil
}

func (s *store) Save(ctx context.Context, c Credentials) error {
	if c.Empty() {
		return fmt.Errorf("save credentials: token and address are both required")
	}
	err := s.repo.SetMany(ctx, map[string][]byte{
		common.TokenKey:   []byte(c.Token),
		common.AddressKey: []byte(c.Address),
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

// Purge removes both keys. Purging an empty store is a no-op.
func (s *store) Purge(ctx context.Context) error {
	if err := s.repo.DeleteMany(ctx, common.TokenKey, common.AddressKey); err != nil {
		return fmt.Errorf("purge credentials: %w", err)
	}
	return nil
}
