package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SignUpForm carries the sign-up profile fields plus an optional avatar image.
type SignUpForm struct {
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
	Country         string
	City            string
	Address         string
	PhoneNumber     string
	AvatarName      string
	Avatar          io.Reader
}

// SignIn exchanges email and password for a token pair. Persisting the tokens
// is left to the caller.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	payload := map[string]string{"email": email, "password": password}
	if err := c.sendJSON(ctx, http.MethodPost, "User/signIn", payload, &auth); err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	return &auth, nil
}

// SignUp registers a new account. The profile fields and the optional avatar
// file travel as one multipart form.
func (c *Client) SignUp(ctx context.Context, form SignUpForm) (*AuthResponse, error) {
	f := &Form{}
	f.Set("userName", form.UserName).
		Set("email", form.Email).
		Set("password", form.Password).
		Set("confirmPassword", form.ConfirmPassword).
		Set("country", form.Country).
		Set("city", form.City).
		Set("address", form.Address).
		Set("phoneNumber", form.PhoneNumber)
	if form.Avatar != nil {
		f.SetFile("image", form.AvatarName, form.Avatar)
	}

	body, contentType, err := f.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-up form: %w", err)
	}

	respBody, err := c.send(ctx, apiRequest{method: http.MethodPost, path: "User/signUp", body: body, contentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	var auth AuthResponse
	if err := parseJSON(respBody, &auth); err != nil {
		return nil, fmt.Errorf("failed to parse sign-up response: %w", err)
	}
	return &auth, nil
}

// SignOut notifies the backend so it can invalidate the token server-side.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.sendJSON(ctx, http.MethodPost, "User/signOut", nil, nil); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

// RefreshSession forces a token refresh with the stored refresh token,
// sharing the same single-flight path as the transparent 401 recovery.
func (c *Client) RefreshSession(ctx context.Context) error {
	_, refreshToken, err := c.tokens.Tokens()
	if err != nil {
		return fmt.Errorf("failed to read stored tokens: %w", err)
	}
	if refreshToken == "" {
		return fmt.Errorf("no refresh token available; please sign in first")
	}
	if _, err := c.refreshAccessToken(ctx); err != nil {
		return err
	}
	return nil
}

// Profile fetches the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "User/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the signed-in user's profile fields.
func (c *Client) UpdateProfile(ctx context.Context, user *User) (*User, error) {
	var updated User
	if err := c.sendJSON(ctx, http.MethodPut, "User/profile", user, &updated); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	log.Info().Str("user", updated.UserName).Msg("Profile updated")
	return &updated, nil
}
