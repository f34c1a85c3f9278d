package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"identity-service/internal/data/entity"
	"identity-service/internal/data/repository"

	"go.uber.org/zap"
)

// ProfileFields is everything the profile writer needs to persist a record
// for a freshly created identity.
type ProfileFields struct {
	IdentityID string
	Email      string
	FirstName  string
	LastName   string
	Username   string
	Phone      *string
	Role       entity.Role
}

// ProfileWriter persists a profile record tied to an identity id. Write is
// idempotent under retry: an insert that fails because the row already
// exists for the same identity id counts as success.
type ProfileWriter interface {
	Write(ctx context.Context, fields ProfileFields) error
}

type profileWriter struct {
	repo   repository.ProfileRepository
	policy RetryPolicy
	log    *zap.Logger
}

func NewProfileWriter(repo repository.ProfileRepository, policy RetryPolicy, log *zap.Logger) ProfileWriter {
	return &profileWriter{
		repo:   repo,
		policy: policy,
		log:    log,
	}
}

// Write retries the insert with linear backoff. The profile store's write
// authorization may lag the identity becoming visible to it, so a handful
// of short waits absorbs the propagation delay. On exhaustion the last
// observed error is returned.
func (w *profileWriter) Write(ctx context.Context, fields ProfileFields) error {
	profile := &entity.Profile{
		IdentityID: fields.IdentityID,
		Email:      fields.Email,
		FirstName:  fields.FirstName,
		LastName:   fields.LastName,
		Username:   fields.Username,
		Phone:      fields.Phone,
		Role:       fields.Role,
		CreatedAt:  time.Now(),
	}

	var lastErr error
	for attempt := 1; attempt <= w.policy.MaxAttempts; attempt++ {
		err := w.repo.Insert(ctx, profile)
		if err == nil {
			if attempt > 1 {
				w.log.Info("Profile saved after retry",
					zap.String("identity_id", fields.IdentityID),
					zap.Int("attempt", attempt),
				)
			}
			return nil
		}

		if errors.Is(err, repository.ErrProfileExists) {
			// A previous attempt landed even though we saw a failure.
			w.log.Info("Profile already present, treating as success",
				zap.String("identity_id", fields.IdentityID),
				zap.Int("attempt", attempt),
			)
			return nil
		}

		lastErr = err
		w.log.Warn("Profile insert attempt failed",
			zap.Error(err),
			zap.String("identity_id", fields.IdentityID),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", w.policy.MaxAttempts),
		)

		if attempt < w.policy.MaxAttempts {
			if sleepErr := w.policy.Sleep(ctx, w.policy.Backoff(attempt)); sleepErr != nil {
				return fmt.Errorf("profile write aborted on attempt %d: %w", attempt, sleepErr)
			}
		}
	}

	return fmt.Errorf("write profile after %d attempts: %w", w.policy.MaxAttempts, lastErr)
}
