package client

import "sync"

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	clearCalls   int
	failReads    bool
}

func (s *memStore) Tokens() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken, nil
}

func (s *memStore) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
	s.clearCalls++
	return nil
}

func (s *memStore) snapshot() (string, string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken, s.clearCalls
}

// rotatingStore serves one pair on the first read and another on every read
// after that, standing in for a store that a concurrent request has rotated
// while this request was in flight.
type rotatingStore struct {
	memStore
	reads          int
	initialAccess  string
	initialRefresh string
}

func (s *rotatingStore) Tokens() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.reads == 1 {
		return s.initialAccess, s.initialRefresh, nil
	}
	return s.accessToken, s.refreshToken, nil
}
