// Package session issues the anonymous tokens that identify a shopper's
// cart between requests.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid cart session")

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

// New signs tokens with secret. An empty secret gets a random key, which
// invalidates every outstanding token when the process restarts.
func New(ttl time.Duration, secret []byte) *Service {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if len(secret) == 0 {
		secret = randomKey()
	}
	return &Service{tokens: newTokenManager(secret), ttl: ttl}
}

func (s *Service) Issue(ctx context.Context) (string, error) {
	return s.tokens.Issue()
}

// Resolve accepts tokens signed with the same secret, including ones issued
// by another process, until ttl after issue.
func (s *Service) Resolve(ctx context.Context, token string) (string, error) {
	if valid, _ := s.tokens.Verify(token, s.ttl); !valid {
		return "", ErrInvalidToken
	}
	return token, nil
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}
