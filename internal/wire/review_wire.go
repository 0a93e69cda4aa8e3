package wire

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/adaptor"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/middleware"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	rdb *redis.Client,
	config *utils.Config,
	log *zap.Logger,
) {
	// Creation requires a signed-in caller and carries the tightest
	// throttle; one review per caller and media.
	r.With(
		middleware.Auth(repo.Token, log),
		middleware.Throttle(rdb, log, middleware.ScopeReviewCreate, config.Throttle.ReviewCreate),
	).Post("/api/media/{id}/review", reviewHandler.CreateReview)

	r.With(
		middleware.Throttle(rdb, log, middleware.ScopeReviewList, config.Throttle.ReviewList),
	).Get("/api/media/{id}/reviews", reviewHandler.GetReviewsByMedia)

	// Reviews of one user across all media.
	r.With(
		middleware.Throttle(rdb, log, middleware.ScopeReviewList, config.Throttle.ReviewList),
	).Get("/api/reviews/user", reviewHandler.GetReviewsByUsername)

	// Detail routes; ownership of writes is enforced in the service.
	r.Route("/api/reviews/{id}", func(r chi.Router) {
		r.Use(middleware.Throttle(rdb, log, middleware.ScopeReviewDetail, config.Throttle.ReviewDetail))

		r.Get("/", reviewHandler.GetReviewByID)
		r.Put("/", reviewHandler.UpdateReview)
		r.Patch("/", reviewHandler.UpdateReview)
		r.Delete("/", reviewHandler.DeleteReview)
	})
}
