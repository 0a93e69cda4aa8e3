package response

import (
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
)

type MediaResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Storyline  string    `json:"storyline"`
	PlatformID string    `json:"streaming_platform"`
	Active     bool      `json:"active"`
	AvgRating  float64   `json:"avg_rating"`
	UserRating int       `json:"user_rating"`
	Created    time.Time `json:"created"`
}

// Helper converter
func MediaToResponse(media *entity.Media) MediaResponse {
	return MediaResponse{
		ID:         media.ID.String(),
		Title:      media.Title,
		Storyline:  media.Storyline,
		PlatformID: media.PlatformID.String(),
		Active:     media.Active,
		AvgRating:  media.AvgRating,
		UserRating: media.UserRating,
		Created:    media.CreatedAt,
	}
}
