package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// A key that is not a uuid can never match a row, so the repository must
// answer without touching the database at all.
func TestFindUserByKeyMalformedKey(t *testing.T) {
	repo := NewTokenRepository(nil, zap.NewNop())

	user, err := repo.FindUserByKey(context.Background(), "garbage")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestDeleteByKeyMalformedKey(t *testing.T) {
	repo := NewTokenRepository(nil, zap.NewNop())

	err := repo.DeleteByKey(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, ErrTokenNotFound)
}
