package identity

import (
	"context"
	"errors"
)

// Provider is the external system of record for credentials. It assigns
// identity ids, sends confirmation emails and is the only component that
// ever sees a secret.
type Provider interface {
	CreateIdentity(ctx context.Context, email, secret string, metadata Metadata) (string, error)
	Authenticate(ctx context.Context, credential Credential, secret string) (string, error)
	DeleteIdentity(ctx context.Context, identityID string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// Metadata travels with the signup call so the provider can render the
// confirmation email with the user's name.
type Metadata struct {
	DisplayName string
	FullName    string
}

type CredentialMethod string

const (
	MethodEmail CredentialMethod = "email"
	MethodPhone CredentialMethod = "phone"
)

// Credential is the canonical value the provider can authenticate:
// either an email address or a phone number, never a username.
type Credential struct {
	Method CredentialMethod
	Value  string
}

func EmailCredential(email string) Credential {
	return Credential{Method: MethodEmail, Value: email}
}

func PhoneCredential(phone string) Credential {
	return Credential{Method: MethodPhone, Value: phone}
}

// Stable provider failure kinds. Raw provider responses are classified into
// these at the client boundary; callers match with errors.Is.
var (
	ErrDuplicateIdentity   = errors.New("identity already exists")
	ErrWeakSecret          = errors.New("secret rejected by provider policy")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIdentityUnconfirmed = errors.New("identity email not confirmed")
	ErrUnavailable         = errors.New("identity provider unavailable")
)
