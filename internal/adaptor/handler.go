package adaptor

import (
	"identity-service/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Registration, service.Login, log),
		Profile: NewProfileHandler(service.Profile, log),
	}
}
