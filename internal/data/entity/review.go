package entity

import (
	"github.com/google/uuid"
)

type Review struct {
	Base
	ReviewerID  uuid.UUID `db:"reviewer_id"`
	MediaID     uuid.UUID `db:"media_id"`
	Rating      int       `db:"rating"`      // 1-5
	Description string    `db:"description"` // max 200
	Active      bool      `db:"active"`
}
