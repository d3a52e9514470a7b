package auth

import (
	"context"
	"encoding/base64"
	"sync"
	"time"
)

// testStorage is a minimal in-memory Storage recording the expirations it was given.
type testStorage struct {
	mu   sync.Mutex
	data map[string][]byte
	exp  map[string]time.Duration
	gets int
}

var _ Storage = (*testStorage)(nil)

func (s *testStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets++

	return s.data[key], nil
}

func (s *testStorage) Set(key string, val []byte, exp time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		s.data = make(map[string][]byte)
		s.exp = make(map[string]time.Duration)
	}

	s.data[key] = append([]byte(nil), val...)
	s.exp[key] = exp

	return nil
}

// stubProvider accepts one bearer token and counts verifications.
type stubProvider struct {
	name     string
	token    string
	identity *Identity
	calls    int
}

func (p *stubProvider) Name() string {
	return p.name
}

func (p *stubProvider) Verify(_ context.Context, cred Credential) (*Identity, error) {
	p.calls++

	if cred.Scheme != SchemeBearer {
		return nil, ErrUnsupportedCredential
	}

	if cred.Token != p.token {
		return nil, ErrInvalidAPIKey
	}

	return p.identity, nil
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
