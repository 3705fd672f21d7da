package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/client/models"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/net/publicsuffix"
)

// API paths.
const (
	PathSignup  = "/api/auth/signup"
	PathLogin   = "/api/auth/login"
	PathRefresh = "/api/auth/refresh"
	PathMe      = "/api/auth/me"
	PathLogout  = "/api/auth/logout"
	PathHealth  = "/api/health"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	// serializes refresh calls so concurrent 401s trigger one refresh
	refreshMu sync.Mutex
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithTransport replaces the HTTP transport, e.g. with one trusting a test
// server certificate.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) {
		c.http.Transport = rt
	}
}

// NewHTTPClient creates a client for the server at baseURL. The refresh
// cookie is kept by the client's cookie jar and never exposed to callers;
// the access token lives in tokens.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: timeout},
		tokens:  tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Signup registers a user and returns the server's confirmation message.
// It does not log in.
func (c *HTTPClient) Signup(ctx context.Context, name, email string, password []byte) (string, error) {
	var out messageResponse
	req := signupRequest{Name: name, Email: email, Password: string(password)}
	if err := c.Do(ctx, http.MethodPost, PathSignup, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login exchanges credentials for an access token, which is stored, and a
// refresh cookie, which the jar keeps.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	var out accessTokenResponse
	req := loginRequest{Email: email, Password: string(password)}
	if err := c.Do(ctx, http.MethodPost, PathLogin, req, &out); err != nil {
		return err
	}
	return c.tokens.SetAccessToken(ctx, out.AccessToken)
}

// Me returns the identity behind the current access token, refreshing it
// silently when it has expired.
func (c *HTTPClient) Me(ctx context.Context) (*models.Identity, error) {
	var out models.Identity
	if err := c.Do(ctx, http.MethodGet, PathMe, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout expires the refresh cookie and clears the stored access token. The
// local token is cleared even when the server cannot be reached.
func (c *HTTPClient) Logout(ctx context.Context) error {
	err := c.Do(ctx, http.MethodPost, PathLogout, nil, nil)
	if cerr := c.tokens.Clear(ctx); cerr != nil {
		return cerr
	}
	return err
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out statusResponse
	if err := c.Do(ctx, http.MethodGet, PathHealth, nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Do sends a JSON request and decodes a JSON response into out (may be nil).
//
// The stored access token is attached as a bearer token. A 401 on any path
// other than login triggers one refresh through the cookie; on success the
// request is resent once with the new token. When the refresh fails the
// stored token is cleared and the original 401 is returned.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = b
	}

	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		return c.mapError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && path != PathLogin && path != PathRefresh {
		origErr := responseError(resp)

		newToken, rerr := c.refresh(ctx, token)
		if rerr != nil {
			_ = c.tokens.Clear(ctx)
			return origErr
		}

		// retried once; a second 401 propagates
		resp, err = c.send(ctx, method, path, payload, newToken)
		if err != nil {
			return c.mapError(err)
		}
	}

	return decodeResponse(resp, out)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	return c.http.Do(req)
}

// refresh obtains a new access token. If another goroutine already replaced
// the token that was rejected, that token is reused.
func (c *HTTPClient) refresh(ctx context.Context, rejected string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	current, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	if current != "" && current != rejected {
		return current, nil
	}

	// no bearer on the refresh call; the jar supplies the cookie
	resp, err := c.send(ctx, http.MethodPost, PathRefresh, nil, "")
	if err != nil {
		return "", c.mapError(err)
	}

	var out accessTokenResponse
	if err := decodeResponse(resp, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrUnauthorized
	}

	if err := c.tokens.SetAccessToken(ctx, out.AccessToken); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// responseError reads and closes an error response and maps it to a
// sentinel error carrying the server message.
func responseError(resp *http.Response) error {
	defer resp.Body.Close()

	var body errorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body.Error)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body.Error)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrUnavailable, body.Error)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body.Error)
	}
}

// mapError classifies transport errors. Cancellation is returned as is.
func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
