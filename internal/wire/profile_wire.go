package wire

import (
	"identity-service/internal/adaptor"
	"identity-service/internal/data/repository"
	"identity-service/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProfile(
	r chi.Router,
	profileHandler *adaptor.ProfileHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.With(middleware.AuthSession(repo.Session, log)).Get("/api/profile", profileHandler.GetOwnProfile)
}
