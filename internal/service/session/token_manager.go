package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"
)

const (
	issuedBytes = 8
	nonceBytes  = 16
	macBytes    = 16
	tokenBytes  = issuedBytes + nonceBytes + macBytes
)

// tokenManager signs tokens that carry their own issue time, so validating
// one needs no per-token state.
type tokenManager struct {
	key []byte
	now func() time.Time
}

func newTokenManager(key []byte) *tokenManager {
	return &tokenManager{key: key, now: time.Now}
}

func (m *tokenManager) Issue() (string, error) {
	b := make([]byte, tokenBytes)
	binary.BigEndian.PutUint64(b[:issuedBytes], uint64(m.now().Unix()))
	if _, err := rand.Read(b[issuedBytes : issuedBytes+nonceBytes]); err != nil {
		return "", err
	}
	copy(b[issuedBytes+nonceBytes:], m.sign(b[:issuedBytes+nonceBytes]))
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Verify reports whether token was signed with this key and was issued no
// longer than ttl ago.
func (m *tokenManager) Verify(token string, ttl time.Duration) (valid, expired bool) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) != tokenBytes {
		return false, false
	}
	if !hmac.Equal(b[issuedBytes+nonceBytes:], m.sign(b[:issuedBytes+nonceBytes])) {
		return false, false
	}
	issued := time.Unix(int64(binary.BigEndian.Uint64(b[:issuedBytes])), 0)
	if m.now().Sub(issued) > ttl {
		return false, true
	}
	return true, false
}

func (m *tokenManager) sign(payload []byte) []byte {
	mac := hmac.New(sha256.New, m.key)
	mac.Write(payload)
	return mac.Sum(nil)[:macBytes]
}

func randomKey() []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(err)
	}
	return key
}
