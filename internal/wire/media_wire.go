package wire

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/adaptor"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMedia(
	r chi.Router,
	mediaHandler *adaptor.MediaHandler,
	log *zap.Logger,
) {
	// The catalog takes staff to extend; single entries only require a
	// signed-in caller for writes. Routes stay flat so the review routes
	// can share the {id} segment.
	r.With(middleware.AdminOrReadOnly(log)).Get("/api/media", mediaHandler.GetMediaList)
	r.With(middleware.AdminOrReadOnly(log)).Post("/api/media", mediaHandler.CreateMedia)

	r.Get("/api/media/{id}", mediaHandler.GetMediaByID)
	r.With(middleware.AuthenticatedOrReadOnly()).Put("/api/media/{id}", mediaHandler.UpdateMedia)
	r.With(middleware.AuthenticatedOrReadOnly()).Delete("/api/media/{id}", mediaHandler.DeleteMedia)
}
