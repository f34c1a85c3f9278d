package response

import (
	"time"

	"identity-service/internal/data/entity"
)

type AuthResponse struct {
	IdentityID string      `json:"identity_id"`
	Token      string      `json:"token,omitempty"`
	ExpiresAt  time.Time   `json:"expires_at,omitzero"`
	Email      string      `json:"email,omitempty"`
	Username   string      `json:"username,omitempty"`
	Role       entity.Role `json:"role,omitempty"`
}

type ProfileResponse struct {
	IdentityID string      `json:"identity_id"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Username   string      `json:"username"`
	Phone      *string     `json:"phone,omitempty"`
	Role       entity.Role `json:"role"`
	CreatedAt  time.Time   `json:"created_at"`
}

func ProfileToResponse(profile *entity.Profile) ProfileResponse {
	return ProfileResponse{
		IdentityID: profile.IdentityID,
		Email:      profile.Email,
		FirstName:  profile.FirstName,
		LastName:   profile.LastName,
		Username:   profile.Username,
		Phone:      profile.Phone,
		Role:       profile.Role,
		CreatedAt:  profile.CreatedAt,
	}
}
