package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/access"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(store *fakeStore, username string) *entity.User {
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	store.users[user.ID] = user
	return user
}

func seedMedia(store *fakeStore, avg float64, count int) *entity.Media {
	media := &entity.Media{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:      "The Test",
		Storyline:  "A story",
		PlatformID: uuid.New(),
		Active:     true,
		AvgRating:  avg,
		UserRating: count,
	}
	store.media[media.ID] = media
	return media
}

func TestReviewCreateFoldsAggregate(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")
	media := seedMedia(store, 0, 0)

	resp, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      4,
		Description: "great",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Reviewer)
	assert.Equal(t, 4, resp.Rating)
	assert.Equal(t, 4.0, media.AvgRating)
	assert.Equal(t, 1, media.UserRating)

	_, err = svc.Create(context.Background(), media.ID, bob.ID, &request.CreateReviewRequest{
		Rating:      2,
		Description: "meh",
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, media.AvgRating)
	assert.Equal(t, 2, media.UserRating)
}

func TestReviewCreateWithSeededCounter(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	media := seedMedia(store, 0, 4)

	_, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      1,
		Description: "bad",
	})
	require.NoError(t, err)
	assert.Equal(t, 0.2, media.AvgRating)
	assert.Equal(t, 5, media.UserRating)
}

func TestReviewCreateRejectsDuplicate(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	media := seedMedia(store, 0, 0)

	_, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      5,
		Description: "first",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      1,
		Description: "second",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "You have already reviewed this media.", err.Error())

	// The rejected submission leaves the aggregate untouched.
	assert.Equal(t, 5.0, media.AvgRating)
	assert.Equal(t, 1, media.UserRating)
}

func TestReviewCreateMediaMissing(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")

	_, err := svc.Create(context.Background(), uuid.New(), alice.ID, &request.CreateReviewRequest{
		Rating:      3,
		Description: "for nothing",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewCreateReviewerRowMissing(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	media := seedMedia(store, 0, 0)

	// A reviewer id with no backing user row must surface as an error,
	// never as a review attributed to an empty name.
	resp, err := svc.Create(context.Background(), media.ID, uuid.New(), &request.CreateReviewRequest{
		Rating:      3,
		Description: "orphaned",
	})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "not found")
}

func TestReviewCreateValidatesRating(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	media := seedMedia(store, 0, 0)

	_, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      6,
		Description: "too high",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating: 3,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewUpdateOwnerOnly(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")
	media := seedMedia(store, 0, 0)

	created, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      4,
		Description: "original",
	})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	newDesc := "edited"
	stranger := access.Caller{ID: bob.ID, Authenticated: true}
	_, err = svc.Update(context.Background(), reviewID, stranger, &request.UpdateReviewRequest{
		Description: &newDesc,
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	owner := access.Caller{ID: alice.ID, Authenticated: true}
	updated, err := svc.Update(context.Background(), reviewID, owner, &request.UpdateReviewRequest{
		Description: &newDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Description)

	// Edits never rewrite the aggregate.
	assert.Equal(t, 4.0, media.AvgRating)
	assert.Equal(t, 1, media.UserRating)
}

func TestReviewDeleteOwnerOnly(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	bob := seedUser(store, "bob")
	media := seedMedia(store, 0, 0)

	created, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      4,
		Description: "to delete",
	})
	require.NoError(t, err)
	reviewID := uuid.MustParse(created.ID)

	stranger := access.Caller{ID: bob.ID, Authenticated: true}
	err = svc.Delete(context.Background(), reviewID, stranger)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	owner := access.Caller{ID: alice.ID, Authenticated: true}
	require.NoError(t, svc.Delete(context.Background(), reviewID, owner))

	_, err = svc.GetByID(context.Background(), reviewID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewListByMedia(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	media := seedMedia(store, 0, 0)
	for _, name := range []string{"alice", "bob", "carol"} {
		user := seedUser(store, name)
		_, err := svc.Create(context.Background(), media.ID, user.ID, &request.CreateReviewRequest{
			Rating:      3,
			Description: "from " + name,
		})
		require.NoError(t, err)
	}

	page, err := svc.GetByMediaID(context.Background(), media.ID, ReviewListParams{})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, defaultReviewPageSize, page.Pagination.PerPage)

	// Oversized page requests fall back to the cap.
	page, err = svc.GetByMediaID(context.Background(), media.ID, ReviewListParams{Size: 500})
	require.NoError(t, err)
	assert.Equal(t, maxReviewPageSize, page.Pagination.PerPage)

	username := "bob"
	page, err = svc.GetByMediaID(context.Background(), media.ID, ReviewListParams{Username: &username})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "bob", page.Data[0].Reviewer)

	_, err = svc.GetByMediaID(context.Background(), uuid.New(), ReviewListParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewListByUsername(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	alice := seedUser(store, "alice")
	first := seedMedia(store, 0, 0)
	second := seedMedia(store, 0, 0)

	for _, media := range []*entity.Media{first, second} {
		_, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
			Rating:      5,
			Description: "loved it",
		})
		require.NoError(t, err)
	}

	reviews, err := svc.GetByUsername(context.Background(), "alice", ReviewListParams{})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	reviews, err = svc.GetByUsername(context.Background(), "nobody", ReviewListParams{})
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewActiveFilter(t *testing.T) {
	repo, store := newFakeRepository()
	svc := NewReviewService(repo, testLogger())

	media := seedMedia(store, 0, 0)
	inactive := false

	alice := seedUser(store, "alice")
	_, err := svc.Create(context.Background(), media.ID, alice.ID, &request.CreateReviewRequest{
		Rating:      2,
		Description: "hidden",
		Active:      &inactive,
	})
	require.NoError(t, err)

	bob := seedUser(store, "bob")
	_, err = svc.Create(context.Background(), media.ID, bob.ID, &request.CreateReviewRequest{
		Rating:      4,
		Description: "visible",
	})
	require.NoError(t, err)

	active := true
	page, err := svc.GetByMediaID(context.Background(), media.ID, ReviewListParams{Active: &active})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "bob", page.Data[0].Reviewer)

	// Inactive reviews still count toward the aggregate.
	assert.Equal(t, 2, media.UserRating)
	assert.Equal(t, 3.0, media.AvgRating)
}
