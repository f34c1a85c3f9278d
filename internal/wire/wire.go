package wire

import (
	"net/http"

	"identity-service/internal/adaptor"
	"identity-service/internal/data/repository"
	"identity-service/internal/identity"
	"identity-service/internal/usecase"
	"identity-service/pkg/middleware"
	"identity-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds all wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, provider identity.Provider, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, provider, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, logger)
	wireProfile(r, handler.Profile, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
