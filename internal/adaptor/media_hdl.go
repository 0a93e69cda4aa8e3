package adaptor

import (
	"encoding/json"
	"net/http"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/usecase"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MediaHandler struct {
	service usecase.MediaService
	log     *zap.Logger
}

func NewMediaHandler(service usecase.MediaService, log *zap.Logger) *MediaHandler {
	return &MediaHandler{
		service: service,
		log:     log.With(zap.String("handler", "media")),
	}
}

// GetMediaList handles GET /api/media
func (h *MediaHandler) GetMediaList(w http.ResponseWriter, r *http.Request) {
	mediaList, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get media list")
		return
	}

	utils.ResponseSuccess(w, "Media retrieved successfully", mediaList)
}

// GetMediaByID handles GET /api/media/{id}
func (h *MediaHandler) GetMediaByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid media ID", nil)
		return
	}

	media, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get media by ID")
		return
	}

	utils.ResponseSuccess(w, "Media retrieved successfully", media)
}

// CreateMedia handles POST /api/media
func (h *MediaHandler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var req request.MediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	media, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create media")
		return
	}

	utils.ResponseCreated(w, "Media created successfully", media)
}

// UpdateMedia handles PUT /api/media/{id}
func (h *MediaHandler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid media ID", nil)
		return
	}

	var req request.MediaUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	media, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update media")
		return
	}

	utils.ResponseSuccess(w, "Media updated successfully", media)
}

// DeleteMedia handles DELETE /api/media/{id}
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid media ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete media")
		return
	}

	utils.ResponseNoContent(w)
}
