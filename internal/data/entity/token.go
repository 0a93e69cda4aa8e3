package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken is the opaque bearer credential, one per user. It is created
// together with the user and only ever deleted, never reissued on update.
type AuthToken struct {
	Key       uuid.UUID `db:"key"`
	UserID    uuid.UUID `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
