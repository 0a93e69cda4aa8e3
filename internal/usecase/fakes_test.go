package usecase

import (
	"context"
	"sync"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes. They mirror the Postgres-backed behavior
// the services depend on: (nil, nil) lookup misses, sentinel errors from
// Submit and DeleteByKey, and the aggregate fold on review submission.

type fakeStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	tokens    map[uuid.UUID]*entity.AuthToken // keyed by token key
	platforms map[uuid.UUID]*entity.Platform
	media     map[uuid.UUID]*entity.Media
	reviews   map[uuid.UUID]*entity.Review
}

func newFakeRepository() (*repository.Repository, *fakeStore) {
	store := &fakeStore{
		users:     make(map[uuid.UUID]*entity.User),
		tokens:    make(map[uuid.UUID]*entity.AuthToken),
		platforms: make(map[uuid.UUID]*entity.Platform),
		media:     make(map[uuid.UUID]*entity.Media),
		reviews:   make(map[uuid.UUID]*entity.Review),
	}
	return &repository.Repository{
		User:     &fakeUserRepo{store: store},
		Token:    &fakeTokenRepo{store: store},
		Platform: &fakePlatformRepo{store: store},
		Media:    &fakeMediaRepo{store: store},
		Review:   &fakeReviewRepo{store: store},
	}, store
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// ---------- users ----------

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) CreateWithToken(_ context.Context, user *entity.User, token *entity.AuthToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	r.store.tokens[token.Key] = token
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.users, id)
	return nil
}

// ---------- tokens ----------

type fakeTokenRepo struct {
	store *fakeStore
}

func (r *fakeTokenRepo) Create(_ context.Context, token *entity.AuthToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.tokens[token.Key] = token
	return nil
}

func (r *fakeTokenRepo) FindUserByKey(_ context.Context, key string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	parsed, err := uuid.Parse(key)
	if err != nil {
		return nil, nil
	}
	token, ok := r.store.tokens[parsed]
	if !ok {
		return nil, nil
	}
	return r.store.users[token.UserID], nil
}

func (r *fakeTokenRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, token := range r.store.tokens {
		if token.UserID == userID {
			return token, nil
		}
	}
	return nil, nil
}

func (r *fakeTokenRepo) DeleteByKey(_ context.Context, key string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	parsed, err := uuid.Parse(key)
	if err != nil {
		return repository.ErrTokenNotFound
	}
	if _, ok := r.store.tokens[parsed]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(r.store.tokens, parsed)
	return nil
}

// ---------- platforms ----------

type fakePlatformRepo struct {
	store *fakeStore
}

func (r *fakePlatformRepo) Create(_ context.Context, platform *entity.Platform) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.platforms[platform.ID] = platform
	return nil
}

func (r *fakePlatformRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Platform, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.platforms[id], nil
}

func (r *fakePlatformRepo) FindAll(_ context.Context) ([]*entity.Platform, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Platform
	for _, p := range r.store.platforms {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlatformRepo) Update(_ context.Context, platform *entity.Platform) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.platforms[platform.ID] = platform
	return nil
}

func (r *fakePlatformRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.platforms, id)
	for mid, m := range r.store.media {
		if m.PlatformID == id {
			delete(r.store.media, mid)
		}
	}
	return nil
}

// ---------- media ----------

type fakeMediaRepo struct {
	store *fakeStore
}

func (r *fakeMediaRepo) Create(_ context.Context, media *entity.Media) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.media[media.ID] = media
	return nil
}

func (r *fakeMediaRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Media, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.media[id], nil
}

func (r *fakeMediaRepo) FindAll(_ context.Context) ([]*entity.Media, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Media
	for _, m := range r.store.media {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMediaRepo) FindByPlatformID(_ context.Context, platformID uuid.UUID) ([]*entity.Media, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.Media
	for _, m := range r.store.media {
		if m.PlatformID == platformID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMediaRepo) Update(_ context.Context, media *entity.Media) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing, ok := r.store.media[media.ID]
	if ok {
		// The aggregate columns are owned by review submission.
		media.AvgRating = existing.AvgRating
		media.UserRating = existing.UserRating
	}
	r.store.media[media.ID] = media
	return nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.media, id)
	return nil
}

// ---------- reviews ----------

type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) Submit(_ context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	media, ok := r.store.media[review.MediaID]
	if !ok {
		return repository.ErrMediaNotFound
	}

	for _, existing := range r.store.reviews {
		if existing.ReviewerID == review.ReviewerID && existing.MediaID == review.MediaID {
			return repository.ErrDuplicateReview
		}
	}

	newCount := media.UserRating + 1
	sum := media.AvgRating*float64(media.UserRating) + float64(review.Rating)
	media.AvgRating = float64(int(sum/float64(newCount)*10+0.5)) / 10
	media.UserRating = newCount

	r.store.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.reviews[id], nil
}

func (r *fakeReviewRepo) matches(review *entity.Review, filter repository.ReviewFilter) bool {
	if filter.Active != nil && review.Active != *filter.Active {
		return false
	}
	if filter.Username != nil {
		user := r.store.users[review.ReviewerID]
		if user == nil || user.Username != *filter.Username {
			return false
		}
	}
	return true
}

func (r *fakeReviewRepo) withUser(review *entity.Review) *repository.ReviewWithUser {
	username := ""
	if user := r.store.users[review.ReviewerID]; user != nil {
		username = user.Username
	}
	return &repository.ReviewWithUser{Review: *review, ReviewerUsername: username}
}

func (r *fakeReviewRepo) FindByMediaID(_ context.Context, mediaID uuid.UUID, filter repository.ReviewFilter, limit, offset int) ([]*repository.ReviewWithUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*repository.ReviewWithUser
	for _, review := range r.store.reviews {
		if review.MediaID == mediaID && r.matches(review, filter) {
			out = append(out, r.withUser(review))
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReviewRepo) CountByMediaID(_ context.Context, mediaID uuid.UUID, filter repository.ReviewFilter) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var count int64
	for _, review := range r.store.reviews {
		if review.MediaID == mediaID && r.matches(review, filter) {
			count++
		}
	}
	return count, nil
}

func (r *fakeReviewRepo) FindByUsername(_ context.Context, username string, limit, offset int) ([]*repository.ReviewWithUser, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*repository.ReviewWithUser
	for _, review := range r.store.reviews {
		user := r.store.users[review.ReviewerID]
		if user != nil && user.Username == username {
			out = append(out, r.withUser(review))
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.reviews[review.ID] = review
	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.reviews, id)
	return nil
}
