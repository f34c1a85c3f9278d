package repository

import (
	"identity-service/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Profile ProfileRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Profile: NewProfileRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}
