package usecase

import (
	"context"
	"fmt"

	"identity-service/internal/data/repository"
	"identity-service/internal/dto/response"

	"go.uber.org/zap"
)

type ProfileService interface {
	GetOwnProfile(ctx context.Context, identityID string) (*response.ProfileResponse, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	log      *zap.Logger
}

func NewProfileService(profiles repository.ProfileRepository, log *zap.Logger) ProfileService {
	return &profileService{
		profiles: profiles,
		log:      log,
	}
}

func (s *profileService) GetOwnProfile(ctx context.Context, identityID string) (*response.ProfileResponse, error) {
	profile, err := s.profiles.FindByIdentityID(ctx, identityID)
	if err != nil {
		s.log.Error("Failed to load profile",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("identity %s: %w", identityID, ErrIdentifierNotFound)
	}

	resp := response.ProfileToResponse(profile)
	return &resp, nil
}
