package wire

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/adaptor"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Public
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// Logout needs the presented token so it can revoke it
	r.With(middleware.Auth(repo.Token, log)).Post("/api/logout", authHandler.Logout)
}
