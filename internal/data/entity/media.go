package entity

import (
	"github.com/google/uuid"
)

type Media struct {
	BaseSimple
	Title      string    `db:"title"`     // max 50
	Storyline  string    `db:"storyline"` // max 200
	PlatformID uuid.UUID `db:"platform_id"`
	Active     bool      `db:"active"`
	AvgRating  float64   `db:"avg_rating"`   // mean of accepted ratings, 1 fractional digit
	UserRating int       `db:"rating_count"` // count of ratings contributing to AvgRating
}
