package session

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func TestIssueAndResolve(t *testing.T) {
	ctx := context.Background()
	svc := New(time.Hour, []byte("secret"))

	token, err := svc.Issue(ctx)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != token {
		t.Fatalf("expected %q, got %q", token, got)
	}
}

func TestIssueIsUnique(t *testing.T) {
	svc := New(time.Hour, nil)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Issue(context.Background())
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}

func TestResolveRejectsMalformed(t *testing.T) {
	svc := New(time.Hour, nil)
	forged := base64.RawURLEncoding.EncodeToString(make([]byte, tokenBytes))
	for _, token := range []string{"", "short", "not base64 !!", forged} {
		if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Resolve(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestResolveRejectsTampered(t *testing.T) {
	svc := New(time.Hour, []byte("secret"))
	token, err := svc.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	b, _ := base64.RawURLEncoding.DecodeString(token)
	b[0] ^= 0xff
	tampered := base64.RawURLEncoding.EncodeToString(b)

	if _, err := svc.Resolve(context.Background(), tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected tampered token to be rejected, got %v", err)
	}
}

func TestResolveAcrossInstances(t *testing.T) {
	ctx := context.Background()
	token, err := New(time.Hour, []byte("secret")).Issue(ctx)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := New(time.Hour, []byte("secret")).Resolve(ctx, token); err != nil {
		t.Fatalf("expected same secret to accept token, got %v", err)
	}
	if _, err := New(time.Hour, []byte("other")).Resolve(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected other secret to reject token, got %v", err)
	}
}

func TestResolveRejectsExpiredEveryTime(t *testing.T) {
	svc := New(time.Minute, []byte("secret"))
	now := time.Now()
	svc.tokens.now = func() time.Time { return now }

	token, err := svc.Issue(context.Background())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	now = now.Add(2 * time.Minute)

	for i := 0; i < 3; i++ {
		if _, err := svc.Resolve(context.Background(), token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("resolve #%d: expected expired token to be rejected, got %v", i+1, err)
		}
	}
}
