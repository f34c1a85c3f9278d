package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"identity-service/internal/dto/request"
	"identity-service/internal/identity"
	"identity-service/internal/usecase"
	"identity-service/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	registration usecase.RegistrationService
	login        usecase.LoginService
	log          *zap.Logger
}

func NewAuthHandler(registration usecase.RegistrationService, login usecase.LoginService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		login:        login,
		log:          log,
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	input := usecase.RegistrationInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Username:  req.Username,
		Phone:     req.Phone,
		Secret:    req.Password,
	}

	resp, err := h.registration.Register(r.Context(), input)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful. Check your email to confirm the account.", resp)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	method := usecase.LoginMethodEmail
	if req.Method == string(usecase.LoginMethodPhone) {
		method = usecase.LoginMethodPhone
	}

	resp, err := h.login.Login(r.Context(), req.Identifier, req.Password, method)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.login.Logout(r.Context(), token); err != nil {
		h.handleServiceError(w, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// RequestPasswordReset handles POST /api/request-password-reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordResetRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.login.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.handleServiceError(w, err, "password reset")
		return
	}

	utils.ResponseSuccess(w, "If the account exists, a reset email has been sent", nil)
}

// handleServiceError maps saga error kinds onto HTTP status codes. Callers
// always get exactly one kind plus a readable cause, never a raw provider
// or database error.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, op string) {
	var missingErr *usecase.MissingFieldsError
	var creationErr *usecase.IdentityCreationError
	var persistErr *usecase.ProfilePersistenceError
	var authErr *usecase.AuthenticationError

	switch {
	case errors.As(err, &missingErr):
		utils.ResponseBadRequest(w, missingErr.Error(), nil)

	case errors.As(err, &creationErr):
		switch {
		case errors.Is(creationErr.Cause, identity.ErrDuplicateIdentity):
			utils.ResponseConflict(w, "An account with this email already exists")
		case errors.Is(creationErr.Cause, identity.ErrWeakSecret):
			utils.ResponseUnprocessable(w, "Password does not meet the provider's requirements")
		default:
			utils.ResponseBadGateway(w, "Could not create the account, please try again later")
		}

	case errors.As(err, &persistErr):
		utils.ResponseBadGateway(w, "Registration could not be completed. If the problem persists, contact support.")

	case errors.Is(err, usecase.ErrIdentifierNotFound),
		errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrIdentityUnconfirmed):
		utils.ResponseUnauthorized(w, "Please confirm your email before logging in")

	case errors.Is(err, usecase.ErrDuplicateIdentifier):
		utils.ResponseInternalError(w, "Account data is inconsistent, contact support")

	case errors.As(err, &authErr):
		utils.ResponseBadGateway(w, "Authentication service unavailable, please try again later")

	default:
		h.log.Error("Unhandled service error",
			zap.Error(err),
			zap.String("operation", op),
		)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
