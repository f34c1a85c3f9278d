package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

// Client talks to a GoTrue-compatible identity provider over HTTP.
// Public endpoints use the anon key; the admin delete endpoint uses the
// service-role key.
type Client struct {
	baseURL          string
	anonKey          string
	serviceRoleKey   string
	emailRedirectURL string
	http             *http.Client
	log              *zap.Logger
}

func NewClient(config utils.IdentityProviderConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL:          config.BaseURL,
		anonKey:          config.AnonKey,
		serviceRoleKey:   config.ServiceRoleKey,
		emailRedirectURL: config.EmailRedirectURL,
		http:             &http.Client{Timeout: config.Timeout},
		log:              log.With(zap.String("client", "identity_provider")),
	}
}

type signupRequest struct {
	Email            string         `json:"email"`
	Password         string         `json:"password"`
	Data             map[string]any `json:"data,omitempty"`
	EmailRedirectTo  string         `json:"email_redirect_to,omitempty"`
}

type signupResponse struct {
	ID   string `json:"id"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

type tokenRequest struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

type tokenResponse struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

// apiError is the provider's error envelope. Classification keys off the
// error codes, never off message text.
type apiError struct {
	ErrorCode        string `json:"error_code"`
	Msg              string `json:"msg"`
	Err              string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e apiError) message() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Err != "":
		return e.Err
	}
	return "unknown provider error"
}

func (c *Client) CreateIdentity(ctx context.Context, email, secret string, metadata Metadata) (string, error) {
	body := signupRequest{
		Email:           email,
		Password:        secret,
		EmailRedirectTo: c.emailRedirectURL,
		Data: map[string]any{
			"display_name": metadata.DisplayName,
			"full_name":    metadata.FullName,
		},
	}

	var resp signupResponse
	if err := c.do(ctx, http.MethodPost, "/signup", c.anonKey, body, &resp); err != nil {
		return "", err
	}

	identityID := resp.ID
	if identityID == "" {
		identityID = resp.User.ID
	}
	if identityID == "" {
		return "", fmt.Errorf("signup succeeded but no identity id received: %w", ErrUnavailable)
	}

	return identityID, nil
}

func (c *Client) Authenticate(ctx context.Context, credential Credential, secret string) (string, error) {
	body := tokenRequest{Password: secret}
	switch credential.Method {
	case MethodPhone:
		body.Phone = credential.Value
	default:
		body.Email = credential.Value
	}

	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.anonKey, body, &resp); err != nil {
		return "", err
	}

	if resp.User.ID == "" {
		return "", fmt.Errorf("authentication succeeded but no identity id received: %w", ErrUnavailable)
	}

	return resp.User.ID, nil
}

func (c *Client) DeleteIdentity(ctx context.Context, identityID string) error {
	path := "/admin/users/" + url.PathEscape(identityID)
	return c.do(ctx, http.MethodDelete, path, c.serviceRoleKey, nil, nil)
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/recover", c.anonKey, body, nil)
}

// do executes one provider call and classifies any failure into the stable
// error kinds declared in provider.go.
func (c *Client) do(ctx context.Context, method, path, key string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode provider request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build provider request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", key)
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode provider response: %w", err)
		}
		return nil
	}

	var apiErr apiError
	// Body may be empty or non-JSON on gateway failures; classification
	// falls through to the status code in that case.
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)

	return c.classify(resp.StatusCode, apiErr)
}

func (c *Client) classify(status int, apiErr apiError) error {
	switch apiErr.ErrorCode {
	case "user_already_exists", "email_exists", "phone_exists":
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, apiErr.message())
	case "weak_password":
		return fmt.Errorf("%w: %s", ErrWeakSecret, apiErr.message())
	case "invalid_credentials":
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.message())
	case "email_not_confirmed", "phone_not_confirmed":
		return fmt.Errorf("%w: %s", ErrIdentityUnconfirmed, apiErr.message())
	}

	// Older providers report the invalid-grant family without an error_code.
	if apiErr.Err == "invalid_grant" {
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.message())
	}

	switch {
	case status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrDuplicateIdentity, apiErr.message())
	case status == http.StatusUnauthorized || status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.message())
	default:
		c.log.Error("Unclassified provider failure",
			zap.Int("status", status),
			zap.String("error_code", apiErr.ErrorCode),
		)
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, apiErr.message())
	}
}
