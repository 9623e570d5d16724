package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// TokenStore persists the credential pair between runs. Exactly one pair
// exists at a time; SetTokens overwrites it and Clear removes it.
type TokenStore interface {
	Tokens() (accessToken, refreshToken string, err error)
	SetTokens(accessToken, refreshToken string) error
	Clear() error
}

// Client talks to the storefront API. Every request carries the static API key
// and, when a token pair is stored, a bearer access token. An expired access
// token is recovered from transparently: the first 401 triggers one refresh
// call shared by all concurrent requests, and the original request is resent
// exactly once with the new token.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	tokens  TokenStore
	refresh singleflight.Group
}

// New creates a Client for the API at baseURL.
func New(baseURL, apiKey string, tokens TokenStore) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 60 * time.Second},
		tokens:  tokens,
	}
}

// apiRequest describes one call to the API. The body is kept as bytes so the
// request can be replayed after a token refresh.
type apiRequest struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

// send performs the request, recovering from an expired access token at most
// once. Transport errors and non-401 API errors pass through unmodified.
func (c *Client) send(ctx context.Context, r apiRequest) ([]byte, error) {
	accessToken, _, err := c.tokens.Tokens()
	if err != nil {
		return nil, fmt.Errorf("failed to read stored tokens: %w", err)
	}

	body, err := c.attempt(ctx, r, accessToken)
	if err == nil || !IsUnauthorized(err) {
		return body, err
	}

	// The stored pair is re-read at 401 time: a concurrent request may have
	// already rotated it, in which case the fresh access token is tried before
	// spending the single-use refresh token.
	currentAccess, refreshToken, readErr := c.tokens.Tokens()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read stored tokens: %w", readErr)
	}
	if currentAccess != "" && currentAccess != accessToken {
		log.Debug().Str("path", r.path).Msg("Token rotated by a concurrent request, retrying with the current token")
		return c.attempt(ctx, r, currentAccess)
	}

	if refreshToken == "" {
		log.Debug().Str("path", r.path).Msg("Unauthorized with no refresh token, clearing credentials")
		if clearErr := c.tokens.Clear(); clearErr != nil {
			log.Error().Err(clearErr).Msg("Failed to clear stored tokens")
		}
		return nil, err
	}

	newAccessToken, refreshErr := c.refreshAccessToken(ctx)
	if refreshErr != nil {
		return nil, refreshErr
	}

	// Resend once with the new token. A second 401 propagates untouched so a
	// rejected token cannot loop back into another refresh.
	return c.attempt(ctx, r, newAccessToken)
}

// attempt performs a single HTTP round-trip with the given access token.
func (c *Client) attempt(ctx context.Context, r apiRequest, accessToken string) ([]byte, error) {
	urlStr := c.baseURL + "/" + strings.TrimPrefix(r.path, "/")
	if len(r.query) > 0 {
		urlStr += "?" + r.query.Encode()
	}

	var reader io.Reader
	if r.body != nil {
		reader = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, urlStr, reader)
	if err != nil {
		log.Error().Err(err).Str("method", r.method).Str("url", urlStr).Msg("Failed to create HTTP request object")
		return nil, err
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	contentType := r.contentType
	if contentType == "" && r.body != nil {
		contentType = "application/json"
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	}

	log.Debug().Str("method", r.method).Str("url", urlStr).Msg("Sending HTTP request")
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", r.method).Str("url", urlStr).Msg("HTTP request failed")
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("url", urlStr).Msg("Failed to read response body")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Str("method", r.method).Str("url", urlStr).Int("status", resp.StatusCode).Msg("HTTP request returned non-OK status")
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

// refreshAccessToken exchanges the refresh token for a new token pair. All
// concurrent callers collapse into a single refresh call and share its
// outcome; on failure the stored credentials are cleared and every caller
// fails with the same error. The refresh token is read inside the collapsed
// call so a rotation that lands between the 401 and the refresh is picked up
// instead of replaying a consumed token.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	result, err, shared := c.refresh.Do("refresh", func() (interface{}, error) {
		_, refreshToken, err := c.tokens.Tokens()
		if err != nil {
			return nil, fmt.Errorf("failed to read stored tokens: %w", err)
		}
		if refreshToken == "" {
			return nil, fmt.Errorf("no refresh token available; please sign in first")
		}

		payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
		if err != nil {
			return nil, err
		}

		log.Info().Msg("Access token rejected, refreshing")
		// The refresh call itself is unauthenticated (API key only).
		body, err := c.attempt(ctx, apiRequest{method: http.MethodPost, path: "User/refreshToken", body: payload}, "")
		if err != nil {
			c.clearTokens()
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}

		var auth AuthResponse
		if err := json.Unmarshal(body, &auth); err != nil {
			c.clearTokens()
			return nil, fmt.Errorf("failed to parse token refresh response: %w", err)
		}
		if auth.AccessToken == "" || auth.RefreshToken == "" {
			c.clearTokens()
			return nil, ErrInvalidRefreshResponse
		}

		if err := c.tokens.SetTokens(auth.AccessToken, auth.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to save refreshed tokens: %w", err)
		}
		log.Info().Msg("Token refreshed and saved successfully.")
		return auth.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		log.Debug().Msg("Token refresh result shared with concurrent request")
	}
	return result.(string), nil
}

func (c *Client) clearTokens() {
	if err := c.tokens.Clear(); err != nil {
		log.Error().Err(err).Msg("Failed to clear stored tokens")
	}
}

// parseJSON decodes body into out, logging a body preview on failure.
func parseJSON(body []byte, out interface{}) error {
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse JSON payload")
		return err
	}
	return nil
}

// getJSON performs a GET request and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.send(ctx, apiRequest{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("path", path).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse API response")
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// sendJSON marshals in, performs the request, and decodes the response into
// out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s: %w", path, err)
		}
	}
	body, err := c.send(ctx, apiRequest{method: method, path: path, body: payload})
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		log.Error().Err(err).Str("path", path).Str("body_preview", string(body[:min(len(body), 200)])).Msg("Failed to parse API response")
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}
