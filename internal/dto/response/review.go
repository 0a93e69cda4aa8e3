package response

import (
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
)

type ReviewResponse struct {
	ID          string    `json:"id"`
	Reviewer    string    `json:"reviewer"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	MediaID     string    `json:"media"`
	Active      bool      `json:"active"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// Helper converter
func ReviewToResponse(review *entity.Review, reviewerUsername string) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID.String(),
		Reviewer:    reviewerUsername,
		Rating:      review.Rating,
		Description: review.Description,
		MediaID:     review.MediaID.String(),
		Active:      review.Active,
		Created:     review.CreatedAt,
		Updated:     review.UpdatedAt,
	}
}
