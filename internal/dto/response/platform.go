package response

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
)

// PlatformResponse embeds the platform's media list, matching the
// historical serialized shape.
type PlatformResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	About   string          `json:"about"`
	Website string          `json:"website"`
	Media   []MediaResponse `json:"media"`
}

// Helper converter
func PlatformToResponse(platform *entity.Platform, media []*entity.Media) PlatformResponse {
	mediaResponses := make([]MediaResponse, len(media))
	for i, m := range media {
		mediaResponses[i] = MediaToResponse(m)
	}

	return PlatformResponse{
		ID:      platform.ID.String(),
		Name:    platform.Name,
		About:   platform.About,
		Website: platform.Website,
		Media:   mediaResponses,
	}
}
