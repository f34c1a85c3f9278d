package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"identity-service/internal/identity"

	"go.uber.org/zap"
)

func newLoginFixture(provider *fakeProvider, repo *memProfileRepo, sessions *memSessionRepo) LoginService {
	resolver := NewIdentifierResolver(repo, zap.NewNop())
	return NewLoginService(provider, resolver, repo, sessions, testConfig(), zap.NewNop())
}

func TestLoginResolvesUsernameBeforeAuthenticating(t *testing.T) {
	provider := newFakeProvider("id-123")
	repo := newMemProfileRepo()
	seedProfile(repo, "id-123", "mario.rossi@x.com", "mario")

	svc := newLoginFixture(provider, repo, newMemSessionRepo())

	resp, err := svc.Login(context.Background(), "mario", "secret", LoginMethodEmail)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Authenticate must see the canonical email, never the raw username
	if len(provider.authCalls) != 1 {
		t.Fatalf("Authenticate calls = %d, want 1", len(provider.authCalls))
	}
	cred := provider.authCalls[0]
	if cred.Method != identity.MethodEmail || cred.Value != "mario.rossi@x.com" {
		t.Errorf("Authenticate credential = %+v, want resolved email", cred)
	}

	if resp.IdentityID != "id-123" {
		t.Errorf("IdentityID = %q, want id-123", resp.IdentityID)
	}
	if resp.Token == "" {
		t.Error("expected session token on successful login")
	}
	if resp.Username != "mario" {
		t.Errorf("Username = %q, want profile enrichment", resp.Username)
	}
}

func TestLoginUnknownUsernameNeverReachesProvider(t *testing.T) {
	provider := newFakeProvider("id-123")

	svc := newLoginFixture(provider, newMemProfileRepo(), newMemSessionRepo())

	_, err := svc.Login(context.Background(), "ghost", "secret", LoginMethodEmail)
	if !errors.Is(err, ErrIdentifierNotFound) {
		t.Fatalf("Login() error = %v, want ErrIdentifierNotFound", err)
	}
	if len(provider.authCalls) != 0 {
		t.Error("unresolved identifier must not be authenticated")
	}
}

func TestLoginMapsProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		authErr error
		want    error
	}{
		{
			name:    "invalid credentials",
			authErr: fmt.Errorf("%w: wrong password", identity.ErrInvalidCredentials),
			want:    ErrInvalidCredentials,
		},
		{
			name:    "unconfirmed identity",
			authErr: fmt.Errorf("%w: confirm your email", identity.ErrIdentityUnconfirmed),
			want:    ErrIdentityUnconfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newFakeProvider("id-123")
			provider.authErr = tt.authErr

			svc := newLoginFixture(provider, newMemProfileRepo(), newMemSessionRepo())

			_, err := svc.Login(context.Background(), "mario@x.com", "secret", LoginMethodEmail)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Login() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginUnknownProviderFailurePassesThroughWrapped(t *testing.T) {
	provider := newFakeProvider("id-123")
	provider.authErr = errors.New("gateway timeout")

	svc := newLoginFixture(provider, newMemProfileRepo(), newMemSessionRepo())

	_, err := svc.Login(context.Background(), "mario@x.com", "secret", LoginMethodEmail)

	var authErr *AuthenticationError
	if !errors.As(err, &authErr) {
		t.Fatalf("Login() error = %v, want AuthenticationError", err)
	}
	if !errors.Is(err, provider.authErr) {
		t.Errorf("cause not preserved: %v", err)
	}
}

func TestLoginPhoneMethodSkipsResolution(t *testing.T) {
	provider := newFakeProvider("id-123")

	svc := newLoginFixture(provider, newMemProfileRepo(), newMemSessionRepo())

	_, err := svc.Login(context.Background(), "+393331234567", "secret", LoginMethodPhone)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(provider.authCalls) != 1 || provider.authCalls[0].Method != identity.MethodPhone {
		t.Errorf("Authenticate calls = %+v, want single phone credential", provider.authCalls)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	provider := newFakeProvider("id-123")
	sessions := newMemSessionRepo()
	repo := newMemProfileRepo()
	seedProfile(repo, "id-123", "mario.rossi@x.com", "mario")

	svc := newLoginFixture(provider, repo, sessions)

	resp, err := svc.Login(context.Background(), "mario", "secret", LoginMethodEmail)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(context.Background(), resp.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	session, _ := sessions.FindValidSession(context.Background(), resp.Token)
	if session != nil {
		t.Error("session still valid after logout")
	}
}
