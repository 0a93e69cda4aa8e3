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

type PlatformService interface {
	Create(ctx context.Context, req *request.PlatformRequest) (*response.PlatformResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.PlatformResponse, error)
	GetAll(ctx context.Context) ([]response.PlatformResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.PlatformUpdateRequest) (*response.PlatformResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type platformService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPlatformService(repo *repository.Repository, log *zap.Logger) PlatformService {
	return &platformService{
		repo: repo,
		log:  log.With(zap.String("service", "platform")),
	}
}

func (s *platformService) Create(ctx context.Context, req *request.PlatformRequest) (*response.PlatformResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create platform validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	platform := &entity.Platform{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:    req.Name,
		About:   req.About,
		Website: req.Website,
	}

	if err := s.repo.Platform.Create(ctx, platform); err != nil {
		s.log.Error("Failed to create platform", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create platform: %w", err)
	}

	s.log.Info("Platform created",
		zap.String("platform_id", platform.ID.String()),
		zap.String("name", platform.Name))

	resp := response.PlatformToResponse(platform, nil)
	return &resp, nil
}

func (s *platformService) GetByID(ctx context.Context, id uuid.UUID) (*response.PlatformResponse, error) {
	platform, err := s.repo.Platform.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find platform", zap.Error(err), zap.String("platform_id", id.String()))
		return nil, fmt.Errorf("find platform: %w", err)
	}
	if platform == nil {
		return nil, notFoundError("Platform not found")
	}

	media, err := s.repo.Media.FindByPlatformID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load platform media", zap.Error(err), zap.String("platform_id", id.String()))
		return nil, fmt.Errorf("load platform media: %w", err)
	}

	resp := response.PlatformToResponse(platform, media)
	return &resp, nil
}

func (s *platformService) GetAll(ctx context.Context) ([]response.PlatformResponse, error) {
	platforms, err := s.repo.Platform.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list platforms", zap.Error(err))
		return nil, fmt.Errorf("list platforms: %w", err)
	}

	responses := make([]response.PlatformResponse, 0, len(platforms))
	for _, platform := range platforms {
		media, err := s.repo.Media.FindByPlatformID(ctx, platform.ID)
		if err != nil {
			s.log.Error("Failed to load platform media",
				zap.Error(err),
				zap.String("platform_id", platform.ID.String()))
			return nil, fmt.Errorf("load platform media: %w", err)
		}
		responses = append(responses, response.PlatformToResponse(platform, media))
	}

	return responses, nil
}

func (s *platformService) Update(ctx context.Context, id uuid.UUID, req *request.PlatformUpdateRequest) (*response.PlatformResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update platform validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	platform, err := s.repo.Platform.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find platform", zap.Error(err), zap.String("platform_id", id.String()))
		return nil, fmt.Errorf("find platform: %w", err)
	}
	if platform == nil {
		return nil, notFoundError("Platform not found")
	}

	if req.Name != nil {
		platform.Name = *req.Name
	}
	if req.About != nil {
		platform.About = *req.About
	}
	if req.Website != nil {
		platform.Website = *req.Website
	}
	platform.UpdatedAt = time.Now()

	if err := s.repo.Platform.Update(ctx, platform); err != nil {
		s.log.Error("Failed to update platform", zap.Error(err), zap.String("platform_id", id.String()))
		return nil, fmt.Errorf("update platform: %w", err)
	}

	s.log.Info("Platform updated", zap.String("platform_id", platform.ID.String()))

	media, err := s.repo.Media.FindByPlatformID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load platform media", zap.Error(err), zap.String("platform_id", id.String()))
		return nil, fmt.Errorf("load platform media: %w", err)
	}

	resp := response.PlatformToResponse(platform, media)
	return &resp, nil
}

func (s *platformService) Delete(ctx context.Context, id uuid.UUID) error {
	platform, err := s.repo.Platform.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find platform", zap.Error(err), zap.String("platform_id", id.String()))
		return fmt.Errorf("find platform: %w", err)
	}
	if platform == nil {
		return notFoundError("Platform not found")
	}

	if err := s.repo.Platform.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete platform", zap.Error(err), zap.String("platform_id", id.String()))
		return fmt.Errorf("delete platform: %w", err)
	}

	return nil
}
