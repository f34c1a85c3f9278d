package usecase

import (
	"context"
	"strings"
	"time"

	"identity-service/internal/data/repository"
	"identity-service/internal/dto/response"
	"identity-service/internal/identity"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

// compensationTimeout bounds the single best-effort identity delete after a
// failed profile write. Detached from the caller's context so an abandoned
// request cannot skip cleanup.
const compensationTimeout = 10 * time.Second

// RegistrationInput is the raw registration submission. Email may carry a
// role tag in its local part.
type RegistrationInput struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Phone     *string
	Secret    string
}

type RegistrationService interface {
	Register(ctx context.Context, input RegistrationInput) (*response.AuthResponse, error)
}

type registrationService struct {
	provider identity.Provider
	writer   ProfileWriter
	sessions repository.SessionRepository
	config   *utils.Config
	log      *zap.Logger
}

func NewRegistrationService(
	provider identity.Provider,
	writer ProfileWriter,
	sessions repository.SessionRepository,
	config *utils.Config,
	log *zap.Logger,
) RegistrationService {
	return &registrationService{
		provider: provider,
		writer:   writer,
		sessions: sessions,
		config:   config,
		log:      log,
	}
}

// Register runs the registration saga: validate, derive role, create the
// identity, persist the profile, compensate on irrecoverable failure. The
// profile is written strictly after the identity exists, so a profile
// without a backing identity can never be observed; the reverse (orphaned
// identity) is transient during retries and terminal only when compensation
// itself fails, which is logged, never dropped.
func (s *registrationService) Register(ctx context.Context, input RegistrationInput) (*response.AuthResponse, error) {
	// 1. Validate: required fields non-blank after trim. No side effects.
	if missing := missingFields(input); len(missing) > 0 {
		s.log.Warn("Registration rejected, missing fields", zap.Strings("fields", missing))
		return nil, &MissingFieldsError{Fields: missing}
	}

	// 2. Derive role from the raw email, register the canonical one
	role, canonicalEmail := DeriveRole(strings.TrimSpace(input.Email))

	// 3. Create identity. Provider failures here are terminal for the saga:
	// a duplicate email must not be retried, there is nothing to compensate.
	metadata := identity.Metadata{
		DisplayName: strings.TrimSpace(input.Username),
		FullName:    strings.TrimSpace(input.FirstName) + " " + strings.TrimSpace(input.LastName),
	}

	identityID, err := s.provider.CreateIdentity(ctx, canonicalEmail, input.Secret, metadata)
	if err != nil {
		s.log.Error("Identity creation failed",
			zap.Error(err),
			zap.String("email", canonicalEmail),
		)
		return nil, &IdentityCreationError{Cause: err}
	}

	s.log.Info("Identity created",
		zap.String("identity_id", identityID),
		zap.String("role", string(role)),
	)

	// 4. Persist profile, compensating the identity when every attempt fails
	fields := ProfileFields{
		IdentityID: identityID,
		Email:      canonicalEmail,
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Username:   strings.TrimSpace(input.Username),
		Phone:      input.Phone,
		Role:       role,
	}

	if err := s.writer.Write(ctx, fields); err != nil {
		s.compensate(identityID)
		return nil, &ProfilePersistenceError{Cause: err}
	}

	// 5. Auto login after register, best effort
	resp := &response.AuthResponse{
		IdentityID: identityID,
		Email:      canonicalEmail,
		Username:   fields.Username,
		Role:       role,
	}

	expiry := time.Duration(s.config.Session.ExpiryHours) * time.Hour
	session, err := issueSession(ctx, s.sessions, identityID, expiry)
	if err != nil {
		s.log.Warn("Failed to create session after register",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
		// Registration itself is committed, answer without a token
	} else {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	s.log.Info("Registration completed",
		zap.String("identity_id", identityID),
		zap.String("email", canonicalEmail),
	)

	return resp, nil
}

// compensate deletes the identity after an irrecoverable profile failure.
// One attempt only, to bound saga latency. A compensation failure leaves an
// orphaned identity behind and must be recorded, not silently dropped.
func (s *registrationService) compensate(identityID string) {
	ctx, cancel := context.WithTimeout(context.Background(), compensationTimeout)
	defer cancel()

	if err := s.provider.DeleteIdentity(ctx, identityID); err != nil {
		s.log.Error("Compensation failed, identity orphaned",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
		return
	}

	s.log.Info("Identity compensated after profile failure",
		zap.String("identity_id", identityID),
	)
}

func missingFields(input RegistrationInput) []string {
	var missing []string
	if strings.TrimSpace(input.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(input.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if strings.TrimSpace(input.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(input.Secret) == "" {
		missing = append(missing, "password")
	}
	return missing
}
