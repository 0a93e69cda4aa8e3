package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubTokenRepo honours the repository contract: only a key that parses
// as a uuid and matches the stored token resolves to a user, any other
// key reads as unknown.
type stubTokenRepo struct {
	key  uuid.UUID
	user *entity.User
}

func (s *stubTokenRepo) Create(ctx context.Context, token *entity.AuthToken) error { return nil }

func (s *stubTokenRepo) FindUserByKey(ctx context.Context, key string) (*entity.User, error) {
	parsed, err := uuid.Parse(key)
	if err != nil {
		return nil, nil
	}
	if parsed == s.key {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubTokenRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	return nil, nil
}

func (s *stubTokenRepo) DeleteByKey(ctx context.Context, key string) error {
	if _, err := uuid.Parse(key); err != nil {
		return repository.ErrTokenNotFound
	}
	return nil
}

func newStubTokenRepo() (*stubTokenRepo, string) {
	key := uuid.New()
	user := &entity.User{Username: "alice"}
	user.ID = uuid.New()
	return &stubTokenRepo{key: key, user: user}, key.String()
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsNonUUIDToken(t *testing.T) {
	repo, _ := newStubTokenRepo()
	handler := Auth(repo, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthRejectsUnknownToken(t *testing.T) {
	repo, _ := newStubTokenRepo()
	handler := Auth(repo, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.New().String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthAcceptsKnownToken(t *testing.T) {
	repo, key := newStubTokenRepo()
	handler := Auth(repo, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+key)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthOptionalRejectsNonUUIDToken(t *testing.T) {
	repo, _ := newStubTokenRepo()
	handler := AuthOptional(repo, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestAuthOptionalPassesAnonymous(t *testing.T) {
	repo, _ := newStubTokenRepo()
	handler := AuthOptional(repo, zap.NewNop())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/media", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
