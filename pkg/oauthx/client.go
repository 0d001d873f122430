package oauthx

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// refreshWindow is how close to expiry the client refreshes proactively.
const refreshWindow = time.Minute

// Client is an SDK client for the token service. It authenticates as an
// OAuth client, keeps the issued tokens, and transparently refreshes the
// access token when it is about to expire.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	clientID     string
	clientSecret string

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// NewClient creates a token service client for the given OAuth client
// credentials.
func NewClient(baseURL, clientID, clientSecret string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// basicAuthHeader builds the Authorization header value the token endpoint
// expects: the scheme word "basic" followed by base64url(id:secret).
func (c *Client) basicAuthHeader() string {
	cred := base64.URLEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	return "basic " + cred
}

// PasswordGrant requests tokens on behalf of a user account.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}
	return c.requestToken(ctx, data)
}

// ClientCredentialsGrant requests an access token for the client itself.
// No refresh token is issued for this grant; re-authenticate when the
// access token expires.
func (c *Client) ClientCredentialsGrant(ctx context.Context) (*TokenResponse, error) {
	data := url.Values{
		"grant_type": {"client_credentials"},
	}
	return c.requestToken(ctx, data)
}

// RefreshGrant exchanges a refresh token for fresh tokens. The presented
// token is consumed whether or not the exchange succeeds with a new one.
func (c *Client) RefreshGrant(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	return c.requestToken(ctx, data)
}

// Authenticate performs a password grant and stores the resulting tokens on
// the client for use by Token.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	resp, err := c.PasswordGrant(ctx, username, password)
	if err != nil {
		return err
	}

	c.storeTokens(resp)
	return nil
}

// AuthenticateClient performs a client_credentials grant and stores the
// resulting access token on the client.
func (c *Client) AuthenticateClient(ctx context.Context) error {
	resp, err := c.ClientCredentialsGrant(ctx)
	if err != nil {
		return err
	}

	c.storeTokens(resp)
	return nil
}

// Token returns a valid access token, refreshing or re-authenticating
// first when the stored token is within a minute of expiry.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken == "" {
		return "", fmt.Errorf("oauthx: not authenticated")
	}

	if time.Until(c.expiresAt) > refreshWindow {
		return c.accessToken, nil
	}

	var (
		resp *TokenResponse
		err  error
	)
	if c.refreshToken != "" {
		resp, err = c.RefreshGrant(ctx, c.refreshToken)
	} else {
		resp, err = c.ClientCredentialsGrant(ctx)
	}
	if err != nil {
		return "", err
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	c.expiresAt = time.UnixMilli(resp.ExpiresOn)

	return c.accessToken, nil
}

// Revoke revokes the stored refresh token and clears the client's tokens.
func (c *Client) Revoke(ctx context.Context) error {
	c.mu.Lock()
	token := c.refreshToken
	c.accessToken = ""
	c.refreshToken = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()

	if token == "" {
		return nil
	}

	data := url.Values{"token": {token}}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/oauth/revoke",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.basicAuthHeader())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp)
	}

	return nil
}

func (c *Client) storeTokens(resp *TokenResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	c.expiresAt = time.UnixMilli(resp.ExpiresOn)
}

func (c *Client) requestToken(ctx context.Context, data url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.BaseURL+"/oauth/token",
		strings.NewReader(data.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", c.basicAuthHeader())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp)
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &tokenResp, nil
}

// parseErrorResponse turns a failed HTTP response into an *Error so callers
// can match on the code and description.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == "" {
		return &Error{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeServerError,
			Description: strings.TrimSpace(string(body)),
		}
	}

	return &Error{
		StatusCode:  resp.StatusCode,
		Code:        errResp.Error,
		Description: errResp.ErrorDescription,
	}
}
