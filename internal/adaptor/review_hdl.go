package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/usecase"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/middleware"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// listParams reads page, size and the optional username/active filters
// from the query string.
func (h *ReviewHandler) listParams(r *http.Request) usecase.ReviewListParams {
	query := r.URL.Query()

	params := usecase.ReviewListParams{
		Page: utils.ParseInt(query.Get("page"), 1),
		Size: utils.ParseInt(query.Get("size"), 0),
	}
	if username := query.Get("username"); username != "" {
		params.Username = &username
	}
	params.Active = utils.ParseBoolPtr(query.Get("active"))

	return params
}

// CreateReview handles POST /api/media/{id}/review
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	mediaID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid media ID", nil)
		return
	}

	reviewerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication credentials were not provided.")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Create(r.Context(), mediaID, reviewerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// GetReviewsByMedia handles GET /api/media/{id}/reviews
func (h *ReviewHandler) GetReviewsByMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid media ID", nil)
		return
	}

	reviews, err := h.service.GetByMediaID(r.Context(), mediaID, h.listParams(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews by media")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetReviewsByUsername handles GET /api/reviews/user?username=
func (h *ReviewHandler) GetReviewsByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		utils.ResponseBadRequest(w, "username query parameter is required", nil)
		return
	}

	reviews, err := h.service.GetByUsername(r.Context(), username, h.listParams(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews by username")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetReviewByID handles GET /api/reviews/{id}
func (h *ReviewHandler) GetReviewByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	review, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get review by ID")
		return
	}

	utils.ResponseSuccess(w, "Review retrieved successfully", review)
}

// UpdateReview handles PUT or PATCH /api/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.Update(r.Context(), id, middleware.CallerFromContext(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id, middleware.CallerFromContext(r)); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}
