package usecase

import (
	"identity-service/internal/data/repository"
	"identity-service/internal/identity"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Registration RegistrationService
	Login        LoginService
	Profile      ProfileService
}

func NewService(repo *repository.Repository, provider identity.Provider, config *utils.Config, log *zap.Logger) *Service {
	writer := NewProfileWriter(repo.Profile, NewRetryPolicy(config.ProfileRetry), log)
	resolver := NewIdentifierResolver(repo.Profile, log)

	return &Service{
		Registration: NewRegistrationService(provider, writer, repo.Session, config, log),
		Login:        NewLoginService(provider, resolver, repo.Profile, repo.Session, config, log),
		Profile:      NewProfileService(repo.Profile, log),
	}
}
