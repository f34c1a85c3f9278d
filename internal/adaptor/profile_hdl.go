package adaptor

import (
	"errors"
	"net/http"

	"identity-service/internal/usecase"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewProfileHandler(service usecase.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		log:     log,
	}
}

// GetOwnProfile handles GET /api/profile
func (h *ProfileHandler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	identityID, ok := utils.GetIdentityIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.GetOwnProfile(r.Context(), identityID)
	if err != nil {
		if errors.Is(err, usecase.ErrIdentifierNotFound) {
			utils.ResponseNotFound(w, "Profile not found")
			return
		}
		h.log.Error("Failed to get profile",
			zap.Error(err),
			zap.String("identity_id", identityID),
		)
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", resp)
}
