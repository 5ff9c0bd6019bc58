package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenSet is the provider's response to a successful password grant.
type TokenSet struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int    `json:"expires_in"`
	RefreshExpiresIn int    `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
}

// Client performs the password-grant and admin-grant flows against the
// provider. It is used only at signup and signin; bearer verification on
// subsequent requests goes through Verifier instead.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a credential exchange client with the configured timeout.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.timeout()},
	}
}

// PasswordGrant exchanges email+password for an access/refresh token pair.
// Any non-success outcome collapses to ErrInvalidCredentials; the provider's
// response detail stays in the wrapped error for internal logging only.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (*TokenSet, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {c.cfg.ClientID},
		"username":   {username},
		"password":   {password},
	}
	res, err := c.postForm(ctx, c.cfg.TokenURL(), form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	defer drain(res)

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: token endpoint returned %d", ErrInvalidCredentials, res.StatusCode)
	}
	var ts TokenSet
	if err := json.NewDecoder(res.Body).Decode(&ts); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", ErrInvalidCredentials, err)
	}
	return &ts, nil
}

// adminToken obtains an administrator access token from the master realm.
func (c *Client) adminToken(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {"admin-cli"},
		"username":   {c.cfg.AdminUser},
		"password":   {c.cfg.AdminPassword},
	}
	res, err := c.postForm(ctx, c.cfg.AdminTokenURL(), form)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdminAuthFailed, err)
	}
	defer drain(res)

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrAdminAuthFailed, res.StatusCode)
	}
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token in response", ErrAdminAuthFailed)
	}
	return body.AccessToken, nil
}

type userRepresentation struct {
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	Enabled       bool         `json:"enabled"`
	EmailVerified bool         `json:"emailVerified"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	Credentials   []credential `json:"credentials,omitempty"`
}

type credential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// CreateUser provisions an enabled, pre-verified remote account. The email
// doubles as the username, matching the signin flow.
func (c *Client) CreateUser(ctx context.Context, email, password, fullName string) error {
	token, err := c.adminToken(ctx)
	if err != nil {
		return err
	}

	first, last := splitName(fullName)
	payload := userRepresentation{
		Username:      email,
		Email:         email,
		Enabled:       true,
		EmailVerified: true,
		FirstName:     first,
		LastName:      last,
		Credentials: []credential{
			{Type: "password", Value: password, Temporary: false},
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AdminUsersURL(), bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}
	defer drain(res)

	if res.StatusCode != http.StatusCreated && res.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: status %d", ErrUserCreationFailed, res.StatusCode)
	}
	return nil
}

// EnsureUser creates the remote account only if no account with that username
// exists yet, so a retried signup does not trip the provider's duplicate
// check.
func (c *Client) EnsureUser(ctx context.Context, email, password, fullName string) error {
	token, err := c.adminToken(ctx)
	if err != nil {
		return err
	}
	exists, err := c.userExists(ctx, token, email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.CreateUser(ctx, email, password, fullName)
}

func (c *Client) userExists(ctx context.Context, token, email string) (bool, error) {
	q := url.Values{"username": {email}, "exact": {"true"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.AdminUsersURL()+"?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUserCreationFailed, err)
	}
	defer drain(res)

	if res.StatusCode != http.StatusOK {
		// Treat a failed lookup as "unknown" and fall through to create; the
		// create path reports its own error if the account already exists.
		return false, nil
	}
	var existing []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&existing); err != nil {
		return false, nil
	}
	return len(existing) > 0, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

func drain(res *http.Response) {
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}

// splitName splits a display name into first and last on the first space.
func splitName(fullName string) (string, string) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return "", ""
	}
	if i := strings.IndexByte(fullName, ' '); i > 0 {
		return fullName[:i], strings.TrimSpace(fullName[i+1:])
	}
	return fullName, ""
}
