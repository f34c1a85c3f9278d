package usecase

import (
	"context"
	"fmt"
	"strings"

	"identity-service/internal/data/repository"
	"identity-service/internal/identity"

	"go.uber.org/zap"
)

// LoginMethod is the caller-declared identifier kind.
type LoginMethod string

const (
	LoginMethodEmail LoginMethod = "email"
	LoginMethodPhone LoginMethod = "phone"
)

// IdentifierResolver turns a login identifier (email, username or phone)
// into a credential the identity provider can authenticate.
type IdentifierResolver interface {
	Resolve(ctx context.Context, identifier string, method LoginMethod) (identity.Credential, error)
}

type identifierResolver struct {
	profiles repository.ProfileRepository
	log      *zap.Logger
}

func NewIdentifierResolver(profiles repository.ProfileRepository, log *zap.Logger) IdentifierResolver {
	return &identifierResolver{
		profiles: profiles,
		log:      log,
	}
}

func (r *identifierResolver) Resolve(ctx context.Context, identifier string, method LoginMethod) (identity.Credential, error) {
	// Phone authentication is handled natively by the provider
	if method == LoginMethodPhone {
		return identity.PhoneCredential(identifier), nil
	}

	// Anything containing "@" is an email, even on username-shaped input
	if strings.Contains(identifier, "@") {
		return identity.EmailCredential(identifier), nil
	}

	// Otherwise treat as a username and look up the profile store
	profiles, err := r.profiles.FindByUsername(ctx, identifier)
	if err != nil {
		return identity.Credential{}, fmt.Errorf("resolve username: %w", err)
	}

	switch len(profiles) {
	case 0:
		return identity.Credential{}, fmt.Errorf("username %q: %w", identifier, ErrIdentifierNotFound)
	case 1:
		return identity.EmailCredential(profiles[0].Email), nil
	default:
		// Uniqueness invariant on username violated upstream. Surface it,
		// never silently pick the first match.
		r.log.Error("Username resolves to multiple profiles",
			zap.String("username", identifier),
			zap.Int("matches", len(profiles)),
		)
		return identity.Credential{}, fmt.Errorf("username %q: %w", identifier, ErrDuplicateIdentifier)
	}
}
