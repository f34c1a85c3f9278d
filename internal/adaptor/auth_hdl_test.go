package adaptor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"identity-service/internal/dto/response"
	"identity-service/internal/identity"
	"identity-service/internal/usecase"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

type stubRegistration struct {
	resp *response.AuthResponse
	err  error
}

func (s *stubRegistration) Register(ctx context.Context, input usecase.RegistrationInput) (*response.AuthResponse, error) {
	return s.resp, s.err
}

type stubLogin struct {
	resp *response.AuthResponse
	err  error
}

func (s *stubLogin) Login(ctx context.Context, identifier, secret string, method usecase.LoginMethod) (*response.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubLogin) Logout(ctx context.Context, token string) error {
	return s.err
}

func (s *stubLogin) RequestPasswordReset(ctx context.Context, email string) error {
	return s.err
}

const registerBody = `{
	"first_name": "Mario",
	"last_name": "Rossi",
	"email": "mario.rossi@x.com",
	"username": "mario",
	"password": "super-secret"
}`

func doRegister(t *testing.T, reg usecase.RegistrationService, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewAuthHandler(reg, &stubLogin{}, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	return rec
}

func TestRegisterHandlerSuccess(t *testing.T) {
	reg := &stubRegistration{resp: &response.AuthResponse{IdentityID: "id-123"}}

	rec := doRegister(t, reg, registerBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestRegisterHandlerRejectsInvalidBody(t *testing.T) {
	rec := doRegister(t, &stubRegistration{}, `{"email": "not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "missing fields",
			err:  &usecase.MissingFieldsError{Fields: []string{"email"}},
			want: http.StatusBadRequest,
		},
		{
			name: "duplicate identity",
			err:  &usecase.IdentityCreationError{Cause: fmt.Errorf("%w: taken", identity.ErrDuplicateIdentity)},
			want: http.StatusConflict,
		},
		{
			name: "weak secret",
			err:  &usecase.IdentityCreationError{Cause: fmt.Errorf("%w: too short", identity.ErrWeakSecret)},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "provider outage",
			err:  &usecase.IdentityCreationError{Cause: errors.New("connect refused")},
			want: http.StatusBadGateway,
		},
		{
			name: "profile persistence exhausted",
			err:  &usecase.ProfilePersistenceError{Cause: errors.New("store unavailable")},
			want: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRegister(t, &stubRegistration{err: tt.err}, registerBody)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLoginHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "identifier not found",
			err:  fmt.Errorf("username %q: %w", "ghost", usecase.ErrIdentifierNotFound),
			want: http.StatusUnauthorized,
		},
		{
			name: "invalid credentials",
			err:  fmt.Errorf("%w: nope", usecase.ErrInvalidCredentials),
			want: http.StatusUnauthorized,
		},
		{
			name: "unconfirmed identity",
			err:  fmt.Errorf("%w: check inbox", usecase.ErrIdentityUnconfirmed),
			want: http.StatusUnauthorized,
		},
		{
			name: "duplicate identifier integrity violation",
			err:  fmt.Errorf("username %q: %w", "mario", usecase.ErrDuplicateIdentifier),
			want: http.StatusInternalServerError,
		},
		{
			name: "unknown provider failure",
			err:  &usecase.AuthenticationError{Cause: errors.New("gateway timeout")},
			want: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&stubRegistration{}, &stubLogin{err: tt.err}, zap.NewNop())
			body := `{"identifier": "mario", "password": "secret"}`
			req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestLoginHandlerSuccess(t *testing.T) {
	login := &stubLogin{resp: &response.AuthResponse{IdentityID: "id-123", Token: "tok"}}
	handler := NewAuthHandler(&stubRegistration{}, login, zap.NewNop())

	body := `{"identifier": "mario.rossi@x.com", "password": "secret", "method": "email"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "id-123") {
		t.Errorf("body = %s, want identity id", rec.Body.String())
	}
}

func TestLogoutHandlerRevokesSessionToken(t *testing.T) {
	login := &stubLogin{}
	handler := NewAuthHandler(&stubRegistration{}, login, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(utils.SetTokenContext(req.Context(), "tok-abc"))
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestLogoutHandlerWithoutSession(t *testing.T) {
	handler := NewAuthHandler(&stubRegistration{}, &stubLogin{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
