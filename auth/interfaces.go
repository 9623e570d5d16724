package auth

import (
	"context"

	"github.com/tmasrour/zanbil/client"
)

// TokenStorer defines the contract for any component that can store and
// retrieve the credential pair.
type TokenStorer interface {
	Tokens() (accessToken, refreshToken string, err error)
	SetTokens(accessToken, refreshToken string) error
	Clear() error
}

// API defines the contract for the remote auth endpoints the service
// orchestrates. *client.Client satisfies it.
type API interface {
	SignIn(ctx context.Context, email, password string) (*client.AuthResponse, error)
	SignUp(ctx context.Context, form client.SignUpForm) (*client.AuthResponse, error)
	SignOut(ctx context.Context) error
	RefreshSession(ctx context.Context) error
}
