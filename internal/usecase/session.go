package usecase

import (
	"context"
	"time"

	"identity-service/internal/data/entity"
	"identity-service/internal/data/repository"

	"github.com/google/uuid"
)

// issueSession creates a session row for an authenticated identity.
func issueSession(ctx context.Context, sessions repository.SessionRepository, identityID string, expiry time.Duration) (*entity.Session, error) {
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		IdentityID: identityID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(expiry),
	}

	if err := sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
