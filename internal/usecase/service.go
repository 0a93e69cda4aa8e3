package usecase

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Platform PlatformService
	Media    MediaService
	Review   ReviewService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, log),
		Platform: NewPlatformService(repo, log),
		Media:    NewMediaService(repo, log),
		Review:   NewReviewService(repo, log),
	}
}
