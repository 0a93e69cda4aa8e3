package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/response"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MediaService interface {
	Create(ctx context.Context, req *request.MediaRequest) (*response.MediaResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.MediaResponse, error)
	GetAll(ctx context.Context) ([]response.MediaResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.MediaUpdateRequest) (*response.MediaResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMediaService(repo *repository.Repository, log *zap.Logger) MediaService {
	return &mediaService{
		repo: repo,
		log:  log.With(zap.String("service", "media")),
	}
}

func (s *mediaService) Create(ctx context.Context, req *request.MediaRequest) (*response.MediaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create media validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	platformID, err := uuid.Parse(req.PlatformID)
	if err != nil {
		return nil, validationError("streaming_platform must be a valid UUID")
	}

	platform, err := s.repo.Platform.FindByID(ctx, platformID)
	if err != nil {
		s.log.Error("Failed to find platform", zap.Error(err), zap.String("platform_id", req.PlatformID))
		return nil, fmt.Errorf("find platform: %w", err)
	}
	if platform == nil {
		return nil, notFoundError("Platform not found")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	avgRating := 0.0
	if req.AvgRating != nil {
		avgRating = *req.AvgRating
	}

	media := &entity.Media{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:      req.Title,
		Storyline:  req.Storyline,
		PlatformID: platformID,
		Active:     active,
		AvgRating:  avgRating,
		UserRating: req.UserRating,
	}

	if err := s.repo.Media.Create(ctx, media); err != nil {
		s.log.Error("Failed to create media", zap.Error(err), zap.String("title", req.Title))
		return nil, fmt.Errorf("create media: %w", err)
	}

	s.log.Info("Media created",
		zap.String("media_id", media.ID.String()),
		zap.String("title", media.Title))

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *mediaService) GetByID(ctx context.Context, id uuid.UUID) (*response.MediaResponse, error) {
	media, err := s.repo.Media.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find media", zap.Error(err), zap.String("media_id", id.String()))
		return nil, fmt.Errorf("find media: %w", err)
	}
	if media == nil {
		return nil, notFoundError("Media not found")
	}

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *mediaService) GetAll(ctx context.Context) ([]response.MediaResponse, error) {
	mediaList, err := s.repo.Media.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list media", zap.Error(err))
		return nil, fmt.Errorf("list media: %w", err)
	}

	responses := make([]response.MediaResponse, 0, len(mediaList))
	for _, media := range mediaList {
		responses = append(responses, response.MediaToResponse(media))
	}

	return responses, nil
}

func (s *mediaService) Update(ctx context.Context, id uuid.UUID, req *request.MediaUpdateRequest) (*response.MediaResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update media validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	media, err := s.repo.Media.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find media", zap.Error(err), zap.String("media_id", id.String()))
		return nil, fmt.Errorf("find media: %w", err)
	}
	if media == nil {
		return nil, notFoundError("Media not found")
	}

	if req.Title != nil {
		media.Title = *req.Title
	}
	if req.Storyline != nil {
		media.Storyline = *req.Storyline
	}
	if req.PlatformID != nil {
		platformID, err := uuid.Parse(*req.PlatformID)
		if err != nil {
			return nil, validationError("streaming_platform must be a valid UUID")
		}
		platform, err := s.repo.Platform.FindByID(ctx, platformID)
		if err != nil {
			s.log.Error("Failed to find platform", zap.Error(err), zap.String("platform_id", *req.PlatformID))
			return nil, fmt.Errorf("find platform: %w", err)
		}
		if platform == nil {
			return nil, notFoundError("Platform not found")
		}
		media.PlatformID = platformID
	}
	if req.Active != nil {
		media.Active = *req.Active
	}

	// avg_rating and the rating counter are never written here; they are
	// owned by the review submission transaction.
	if err := s.repo.Media.Update(ctx, media); err != nil {
		s.log.Error("Failed to update media", zap.Error(err), zap.String("media_id", id.String()))
		return nil, fmt.Errorf("update media: %w", err)
	}

	s.log.Info("Media updated", zap.String("media_id", media.ID.String()))

	resp := response.MediaToResponse(media)
	return &resp, nil
}

func (s *mediaService) Delete(ctx context.Context, id uuid.UUID) error {
	media, err := s.repo.Media.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find media", zap.Error(err), zap.String("media_id", id.String()))
		return fmt.Errorf("find media: %w", err)
	}
	if media == nil {
		return notFoundError("Media not found")
	}

	if err := s.repo.Media.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete media", zap.Error(err), zap.String("media_id", id.String()))
		return fmt.Errorf("delete media: %w", err)
	}

	return nil
}
