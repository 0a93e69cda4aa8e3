package request

// MediaRequest mirrors the historical wire format: user_rating is the
// seed value of the rating counter and is validated 1-5 on input, while
// the stored counter itself grows past 5 as reviews accumulate.
type MediaRequest struct {
	Title      string   `json:"title" validate:"required,max=50"`
	Storyline  string   `json:"storyline" validate:"required,max=200"`
	PlatformID string   `json:"streaming_platform" validate:"required,uuid4"`
	Active     *bool    `json:"active,omitempty"`
	UserRating int      `json:"user_rating" validate:"required,min=1,max=5"`
	AvgRating  *float64 `json:"avg_rating,omitempty" validate:"omitempty,min=0,max=5"`
}

type MediaUpdateRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,max=50"`
	Storyline  *string `json:"storyline,omitempty" validate:"omitempty,max=200"`
	PlatformID *string `json:"streaming_platform,omitempty" validate:"omitempty,uuid4"`
	Active     *bool   `json:"active,omitempty"`
}
