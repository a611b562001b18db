// Package auth is the client's side of the auth provider boundary. Tokens
// are issued elsewhere; this package stores the one the user hands over and
// serves it to the remote client before every call.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/screenmock/internal/client/client"
	"github.com/dmitrijs2005/screenmock/internal/client/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenExpired = errors.New("session token expired")

// Store keeps the session token in the local metadata table.
type Store struct {
	repo metadata.Repository
	now  func() time.Time
	// Leeway tolerates small clock drift against the issuer.
	Leeway time.Duration
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo, now: time.Now, Leeway: 30 * time.Second}
}

// SignIn saves token after checking it is not already expired.
func (s *Store) SignIn(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return client.ErrAuthTokenMissing
	}
	if err := s.checkExpiry(token); err != nil {
		return err
	}
	return s.repo.Set(ctx, metadata.KeySessionToken, token)
}

func (s *Store) SignOut(ctx context.Context) error {
	return s.repo.Delete(ctx, metadata.KeySessionToken)
}

func (s *Store) SignedIn(ctx context.Context) bool {
	_, err := s.Token(ctx)
	return err == nil
}

// Token implements client.TokenSource. A missing or expired token yields
// client.ErrAuthTokenMissing.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, ok, err := s.repo.Get(ctx, metadata.KeySessionToken)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if !ok || token == "" {
		return "", client.ErrAuthTokenMissing
	}
	if err := s.checkExpiry(token); err != nil {
		return "", fmt.Errorf("%w: %w", client.ErrAuthTokenMissing, err)
	}
	return token, nil
}

// checkExpiry only looks at the exp claim of JWT-shaped tokens; the
// signature belongs to the issuer and is verified server-side. Opaque
// tokens are passed through.
func (s *Store) checkExpiry(token string) error {
	if strings.Count(token, ".") != 2 {
		return nil
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	if s.now().After(claims.ExpiresAt.Time.Add(s.Leeway)) {
		return ErrTokenExpired
	}
	return nil
}
