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

type PlatformHandler struct {
	service usecase.PlatformService
	log     *zap.Logger
}

func NewPlatformHandler(service usecase.PlatformService, log *zap.Logger) *PlatformHandler {
	return &PlatformHandler{
		service: service,
		log:     log.With(zap.String("handler", "platform")),
	}
}

// GetPlatforms handles GET /api/platforms
func (h *PlatformHandler) GetPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get platforms")
		return
	}

	utils.ResponseSuccess(w, "Platforms retrieved successfully", platforms)
}

// GetPlatformByID handles GET /api/platforms/{id}
func (h *PlatformHandler) GetPlatformByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid platform ID", nil)
		return
	}

	platform, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get platform by ID")
		return
	}

	utils.ResponseSuccess(w, "Platform retrieved successfully", platform)
}

// CreatePlatform handles POST /api/platforms
func (h *PlatformHandler) CreatePlatform(w http.ResponseWriter, r *http.Request) {
	var req request.PlatformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	platform, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create platform")
		return
	}

	utils.ResponseCreated(w, "Platform created successfully", platform)
}

// UpdatePlatform handles PUT /api/platforms/{id}
func (h *PlatformHandler) UpdatePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid platform ID", nil)
		return
	}

	var req request.PlatformUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	platform, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update platform")
		return
	}

	utils.ResponseSuccess(w, "Platform updated successfully", platform)
}

// DeletePlatform handles DELETE /api/platforms/{id}
func (h *PlatformHandler) DeletePlatform(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid platform ID", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete platform")
		return
	}

	utils.ResponseNoContent(w)
}
