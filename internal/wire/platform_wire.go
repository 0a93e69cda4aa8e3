package wire

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/adaptor"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePlatform(
	r chi.Router,
	platformHandler *adaptor.PlatformHandler,
	log *zap.Logger,
) {
	// Anyone can read; writes are staff only.
	r.Route("/api/platforms", func(r chi.Router) {
		r.Use(middleware.AdminOrReadOnly(log))

		r.Get("/", platformHandler.GetPlatforms)
		r.Post("/", platformHandler.CreatePlatform)
		r.Get("/{id}", platformHandler.GetPlatformByID)
		r.Put("/{id}", platformHandler.UpdatePlatform)
		r.Patch("/{id}", platformHandler.UpdatePlatform)
		r.Delete("/{id}", platformHandler.DeletePlatform)
	})
}
