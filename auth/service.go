package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmasrour/zanbil/client"
)

// Service orchestrates the sign-in session lifecycle using its dependencies.
// The API performs the HTTP calls; the Storer owns credential persistence.
type Service struct {
	Storer TokenStorer
	API    API
}

// NewService is the constructor for the auth service.
func NewService(storer TokenStorer, api API) *Service {
	return &Service{
		Storer: storer,
		API:    api,
	}
}

// SignIn exchanges credentials for a token pair and persists it. Changing
// identity invalidates any client-side cart view; callers reload the cart
// after a successful sign-in.
func (s *Service) SignIn(ctx context.Context, email, password string) (*client.User, error) {
	auth, err := s.API.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if auth.AccessToken == "" || auth.RefreshToken == "" {
		return nil, fmt.Errorf("sign-in response did not include a token pair")
	}
	if err := s.Storer.SetTokens(auth.AccessToken, auth.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to save tokens: %w", err)
	}
	log.Info().Msg("Signed in successfully.")
	return auth.User, nil
}

// SignUp registers a new account and persists the returned token pair.
func (s *Service) SignUp(ctx context.Context, form client.SignUpForm) (*client.User, error) {
	auth, err := s.API.SignUp(ctx, form)
	if err != nil {
		return nil, err
	}
	if auth.AccessToken != "" && auth.RefreshToken != "" {
		if err := s.Storer.SetTokens(auth.AccessToken, auth.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to save tokens: %w", err)
		}
	}
	log.Info().Msg("Account created successfully.")
	return auth.User, nil
}

// SignOut notifies the backend and clears the stored credentials. The local
// clear happens even when the backend call fails, so the user is always
// signed out client-side.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.API.SignOut(ctx); err != nil {
		log.Warn().Err(err).Msg("Backend sign-out notification failed")
	}
	if err := s.Storer.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored tokens: %w", err)
	}
	log.Info().Msg("Signed out.")
	return nil
}

// Refresh forces a token refresh. The stored credentials are cleared by the
// client when the refresh fails.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.API.RefreshSession(ctx); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	return nil
}

// SignedIn reports whether a credential pair is currently stored.
func (s *Service) SignedIn() (bool, error) {
	accessToken, refreshToken, err := s.Storer.Tokens()
	if err != nil {
		return false, fmt.Errorf("failed to read stored tokens: %w", err)
	}
	return accessToken != "" || refreshToken != "", nil
}
