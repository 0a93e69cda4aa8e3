package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/access"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/response"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultReviewPageSize = 20
	maxReviewPageSize     = 20
)

// ReviewListParams carries the paging and filter knobs of the listing
// endpoints. Size is clamped to the page cap.
type ReviewListParams struct {
	Page     int
	Size     int
	Username *string
	Active   *bool
}

func (p ReviewListParams) normalize() (page, size int) {
	page = p.Page
	if page < 1 {
		page = 1
	}
	size = p.Size
	if size < 1 || size > maxReviewPageSize {
		size = defaultReviewPageSize
	}
	return page, size
}

type ReviewService interface {
	Create(ctx context.Context, mediaID, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.ReviewResponse, error)
	GetByMediaID(ctx context.Context, mediaID uuid.UUID, params ReviewListParams) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetByUsername(ctx context.Context, username string, params ReviewListParams) ([]response.ReviewResponse, error)
	Update(ctx context.Context, id uuid.UUID, caller access.Caller, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	Delete(ctx context.Context, id uuid.UUID, caller access.Caller) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) Create(ctx context.Context, mediaID, reviewerID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	review := &entity.Review{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ReviewerID:  reviewerID,
		MediaID:     mediaID,
		Rating:      req.Rating,
		Description: req.Description,
		Active:      active,
	}

	if err := s.repo.Review.Submit(ctx, review); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, notFoundError("Media not found")
		}
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, conflictError("You have already reviewed this media.")
		}
		s.log.Error("Failed to submit review",
			zap.Error(err),
			zap.String("media_id", mediaID.String()),
			zap.String("reviewer_id", reviewerID.String()))
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.log.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("media_id", mediaID.String()),
		zap.Int("rating", review.Rating))

	username, err := s.reviewerUsername(ctx, reviewerID)
	if err != nil {
		return nil, err
	}
	resp := response.ReviewToResponse(review, username)
	return &resp, nil
}

func (s *reviewService) GetByID(ctx context.Context, id uuid.UUID) (*response.ReviewResponse, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", id.String()))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, notFoundError("Review not found")
	}

	username, err := s.reviewerUsername(ctx, review.ReviewerID)
	if err != nil {
		return nil, err
	}
	resp := response.ReviewToResponse(review, username)
	return &resp, nil
}

func (s *reviewService) GetByMediaID(ctx context.Context, mediaID uuid.UUID, params ReviewListParams) (*response.PaginatedResponse[response.ReviewResponse], error) {
	media, err := s.repo.Media.FindByID(ctx, mediaID)
	if err != nil {
		s.log.Error("Failed to find media", zap.Error(err), zap.String("media_id", mediaID.String()))
		return nil, fmt.Errorf("find media: %w", err)
	}
	if media == nil {
		return nil, notFoundError("Media not found")
	}

	page, size := params.normalize()
	filter := repository.ReviewFilter{
		Username: params.Username,
		Active:   params.Active,
	}

	reviews, err := s.repo.Review.FindByMediaID(ctx, mediaID, filter, size, utils.CalculateOffset(page, size))
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("media_id", mediaID.String()))
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	total, err := s.repo.Review.CountByMediaID(ctx, mediaID, filter)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.String("media_id", mediaID.String()))
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	responses := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, response.ReviewToResponse(&review.Review, review.ReviewerUsername))
	}

	return response.NewPaginatedResponse(responses, page, size, total), nil
}

func (s *reviewService) GetByUsername(ctx context.Context, username string, params ReviewListParams) ([]response.ReviewResponse, error) {
	page, size := params.normalize()

	reviews, err := s.repo.Review.FindByUsername(ctx, username, size, utils.CalculateOffset(page, size))
	if err != nil {
		s.log.Error("Failed to list reviews by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("list reviews by username: %w", err)
	}

	responses := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, response.ReviewToResponse(&review.Review, review.ReviewerUsername))
	}

	return responses, nil
}

func (s *reviewService) Update(ctx context.Context, id uuid.UUID, caller access.Caller, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, validationError(utils.FormatValidationErrors(errs))
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", id.String()))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, notFoundError("Review not found")
	}

	if !access.Allow(access.OwnerOrReadOnly, http.MethodPut, caller, review.ReviewerID) {
		return nil, permissionDeniedError("You do not have permission to perform this action.")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Description != nil {
		review.Description = *req.Description
	}
	if req.Active != nil {
		review.Active = *req.Active
	}
	review.UpdatedAt = time.Now()

	// Edits do not touch the media aggregate; the rating folded in at
	// submission stands.
	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", id.String()))
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	username, err := s.reviewerUsername(ctx, review.ReviewerID)
	if err != nil {
		return nil, err
	}
	resp := response.ReviewToResponse(review, username)
	return &resp, nil
}

// reviewerUsername resolves the author of a review. Every review row
// references an existing user, so a missing reviewer is a data fault
// and must not serialize as an empty name.
func (s *reviewService) reviewerUsername(ctx context.Context, reviewerID uuid.UUID) (string, error) {
	reviewer, err := s.repo.User.FindByID(ctx, reviewerID)
	if err != nil {
		s.log.Error("Failed to load reviewer", zap.Error(err), zap.String("reviewer_id", reviewerID.String()))
		return "", fmt.Errorf("load reviewer: %w", err)
	}
	if reviewer == nil {
		s.log.Error("Reviewer row missing for review", zap.String("reviewer_id", reviewerID.String()))
		return "", fmt.Errorf("load reviewer: user %s not found", reviewerID)
	}
	return reviewer.Username, nil
}

func (s *reviewService) Delete(ctx context.Context, id uuid.UUID, caller access.Caller) error {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return notFoundError("Review not found")
	}

	if !access.Allow(access.OwnerOrReadOnly, http.MethodDelete, caller, review.ReviewerID) {
		return permissionDeniedError("You do not have permission to perform this action.")
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", id.String()))
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
