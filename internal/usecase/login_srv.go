package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"identity-service/internal/data/repository"
	"identity-service/internal/dto/response"
	"identity-service/internal/identity"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

type LoginService interface {
	Login(ctx context.Context, identifier, secret string, method LoginMethod) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
}

type loginService struct {
	provider identity.Provider
	resolver IdentifierResolver
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
	config   *utils.Config
	log      *zap.Logger
}

func NewLoginService(
	provider identity.Provider,
	resolver IdentifierResolver,
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	config *utils.Config,
	log *zap.Logger,
) LoginService {
	return &loginService{
		provider: provider,
		resolver: resolver,
		profiles: profiles,
		sessions: sessions,
		config:   config,
		log:      log,
	}
}

// Login resolves the identifier to a provider credential, authenticates and
// issues a session. No retries anywhere: authentication failures are not
// transient.
func (s *loginService) Login(ctx context.Context, identifier, secret string, method LoginMethod) (*response.AuthResponse, error) {
	credential, err := s.resolver.Resolve(ctx, identifier, method)
	if err != nil {
		s.log.Warn("Identifier resolution failed", zap.Error(err))
		return nil, err
	}

	identityID, err := s.provider.Authenticate(ctx, credential, secret)
	if err != nil {
		return nil, s.mapAuthError(err)
	}

	resp := &response.AuthResponse{IdentityID: identityID}

	// Enrich the response from the profile store; a missing profile is an
	// integrity smell worth logging but does not fail the login.
	profile, err := s.profiles.FindByIdentityID(ctx, identityID)
	if err != nil {
		s.log.Warn("Failed to load profile after login",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
	} else if profile == nil {
		s.log.Warn("Authenticated identity has no profile",
			zap.String("identity_id", identityID),
		)
	} else {
		resp.Email = profile.Email
		resp.Username = profile.Username
		resp.Role = profile.Role
	}

	expiry := time.Duration(s.config.Session.ExpiryHours) * time.Hour
	session, err := issueSession(ctx, s.sessions, identityID, expiry)
	if err != nil {
		s.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
		return nil, fmt.Errorf("create session: %w", err)
	}

	resp.Token = session.Token.String()
	resp.ExpiresAt = session.ExpiresAt

	s.log.Info("Login completed", zap.String("identity_id", identityID))

	return resp, nil
}

func (s *loginService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info("Session revoked")
	return nil
}

// RequestPasswordReset asks the provider to send a reset email. The caller
// gets no signal about whether the account exists.
func (s *loginService) RequestPasswordReset(ctx context.Context, email string) error {
	if err := s.provider.SendPasswordReset(ctx, email); err != nil {
		s.log.Error("Password reset request failed", zap.Error(err))
		return &AuthenticationError{Cause: err}
	}

	s.log.Info("Password reset requested")
	return nil
}

// mapAuthError classifies provider authentication failures into the stable
// kinds callers can match on. Unknown causes pass through wrapped.
func (s *loginService) mapAuthError(err error) error {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		s.log.Warn("Invalid credentials")
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	case errors.Is(err, identity.ErrIdentityUnconfirmed):
		s.log.Warn("Unconfirmed identity tried to login")
		return fmt.Errorf("%w: %v", ErrIdentityUnconfirmed, err)
	default:
		s.log.Error("Authentication failed", zap.Error(err))
		return &AuthenticationError{Cause: err}
	}
}
