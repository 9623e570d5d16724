package db

import "context"

// CredentialStore adapts a TokenRepository to the flat token-pair accessors
// the API client and the auth service expect.
type CredentialStore struct {
	repo TokenRepository
}

// NewCredentialStore creates a CredentialStore over the given repository.
func NewCredentialStore(repo TokenRepository) *CredentialStore {
	return &CredentialStore{repo: repo}
}

// Tokens returns the stored pair, or empty strings when nothing is stored.
func (s *CredentialStore) Tokens() (string, string, error) {
	token, err := s.repo.Get(context.Background())
	if err != nil {
		return "", "", err
	}
	if token == nil {
		return "", "", nil
	}
	return token.AccessToken, token.RefreshToken, nil
}

// SetTokens overwrites the stored pair.
func (s *CredentialStore) SetTokens(accessToken, refreshToken string) error {
	return s.repo.Upsert(context.Background(), &Token{AccessToken: accessToken, RefreshToken: refreshToken})
}

// Clear removes the stored pair.
func (s *CredentialStore) Clear() error {
	return s.repo.Clear(context.Background())
}
