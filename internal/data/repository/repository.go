package repository

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Token    TokenRepository
	Platform PlatformRepository
	Media    MediaRepository
	Review   ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Token:    NewTokenRepository(db, log),
		Platform: NewPlatformRepository(db, log),
		Media:    NewMediaRepository(db, log),
		Review:   NewReviewRepository(db, log),
	}
}
