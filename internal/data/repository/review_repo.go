package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrMediaNotFound is returned by Submit when the target media row is absent.
	ErrMediaNotFound = errors.New("media not found")
	// ErrDuplicateReview is returned by Submit when the (reviewer, media)
	// pair already has a review.
	ErrDuplicateReview = errors.New("duplicate review")
)

// ReviewFilter narrows review listings. Nil fields mean "no filter".
type ReviewFilter struct {
	Username *string
	Active   *bool
}

// ReviewWithUser carries the reviewer's username resolved by the listing join.
type ReviewWithUser struct {
	entity.Review
	ReviewerUsername string
}

type ReviewRepository interface {
	// Submit inserts the review and folds its rating into the media
	// aggregate inside a single transaction with the media row locked.
	Submit(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByMediaID(ctx context.Context, mediaID uuid.UUID, filter ReviewFilter, limit, offset int) ([]*ReviewWithUser, error)
	CountByMediaID(ctx context.Context, mediaID uuid.UUID, filter ReviewFilter) (int64, error)
	FindByUsername(ctx context.Context, username string, limit, offset int) ([]*ReviewWithUser, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// foldRating folds one more rating into the running mean. The stored
// average keeps one fractional digit.
func foldRating(avg float64, count, rating int) (float64, int) {
	newCount := count + 1
	newAvg := math.Round((avg*float64(count)+float64(rating))/float64(newCount)*10) / 10
	return newAvg, newCount
}

func (r *reviewRepository) Submit(ctx context.Context, review *entity.Review) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin review transaction", zap.Error(err))
		return fmt.Errorf("begin review transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the media row so concurrent submissions for the same media
	// serialize on the aggregate update.
	var avgRating float64
	var ratingCount int
	err = tx.QueryRow(ctx,
		`SELECT avg_rating, rating_count FROM media WHERE id = $1 FOR UPDATE`,
		review.MediaID,
	).Scan(&avgRating, &ratingCount)

	if err == pgx.ErrNoRows {
		return ErrMediaNotFound
	}
	if err != nil {
		r.log.Error("Failed to lock media row",
			zap.Error(err),
			zap.String("media_id", review.MediaID.String()),
		)
		return fmt.Errorf("lock media %s: %w", review.MediaID.String(), err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE reviewer_id = $1 AND media_id = $2)`,
		review.ReviewerID, review.MediaID,
	).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check existing review",
			zap.Error(err),
			zap.String("reviewer_id", review.ReviewerID.String()),
			zap.String("media_id", review.MediaID.String()),
		)
		return fmt.Errorf("check existing review: %w", err)
	}
	if exists {
		return ErrDuplicateReview
	}

	newAvg, newCount := foldRating(avgRating, ratingCount, review.Rating)

	_, err = tx.Exec(ctx,
		`UPDATE media SET avg_rating = $2, rating_count = $3 WHERE id = $1`,
		review.MediaID, newAvg, newCount,
	)
	if err != nil {
		r.log.Error("Failed to update media aggregate",
			zap.Error(err),
			zap.String("media_id", review.MediaID.String()),
		)
		return fmt.Errorf("update media aggregate: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, reviewer_id, media_id, rating, description,
		                     active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		review.ID,
		review.ReviewerID,
		review.MediaID,
		review.Rating,
		review.Description,
		review.Active,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		// The unique constraint on (reviewer_id, media_id) backstops the
		// existence check above against concurrent submissions.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReview
		}
		r.log.Error("Failed to insert review",
			zap.Error(err),
			zap.String("reviewer_id", review.ReviewerID.String()),
			zap.String("media_id", review.MediaID.String()),
		)
		return fmt.Errorf("insert review for media %s by user %s: %w",
			review.MediaID.String(), review.ReviewerID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit review transaction", zap.Error(err))
		return fmt.Errorf("commit review transaction: %w", err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, reviewer_id, media_id, rating, description, active,
		       created_at, updated_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.ReviewerID,
		&review.MediaID,
		&review.Rating,
		&review.Description,
		&review.Active,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByMediaID(ctx context.Context, mediaID uuid.UUID, filter ReviewFilter, limit, offset int) ([]*ReviewWithUser, error) {
	query := `
		SELECT r.id, r.reviewer_id, r.media_id, r.rating, r.description,
		       r.active, r.created_at, r.updated_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.reviewer_id
		WHERE r.media_id = $1
	`
	args := []any{mediaID}

	if filter.Username != nil {
		args = append(args, *filter.Username)
		query += fmt.Sprintf(" AND u.username = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND r.active = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY r.created_at ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find reviews by media ID",
			zap.Error(err),
			zap.String("media_id", mediaID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by media ID %s: %w", mediaID.String(), err)
	}
	defer rows.Close()

	return r.collectReviews(rows)
}

func (r *reviewRepository) CountByMediaID(ctx context.Context, mediaID uuid.UUID, filter ReviewFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM reviews r
		JOIN users u ON u.id = r.reviewer_id
		WHERE r.media_id = $1
	`
	args := []any{mediaID}

	if filter.Username != nil {
		args = append(args, *filter.Username)
		query += fmt.Sprintf(" AND u.username = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND r.active = $%d", len(args))
	}

	var count int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count reviews by media ID",
			zap.Error(err),
			zap.String("media_id", mediaID.String()),
		)
		return 0, fmt.Errorf("count reviews by media ID %s: %w", mediaID.String(), err)
	}

	return count, nil
}

func (r *reviewRepository) FindByUsername(ctx context.Context, username string, limit, offset int) ([]*ReviewWithUser, error) {
	query := `
		SELECT r.id, r.reviewer_id, r.media_id, r.rating, r.description,
		       r.active, r.created_at, r.updated_at, u.username
		FROM reviews r
		JOIN users u ON u.id = r.reviewer_id
		WHERE u.username = $1
		ORDER BY r.created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, username, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by username",
			zap.Error(err),
			zap.String("username", username),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews by username %s: %w", username, err)
	}
	defer rows.Close()

	return r.collectReviews(rows)
}

func (r *reviewRepository) collectReviews(rows pgx.Rows) ([]*ReviewWithUser, error) {
	var reviews []*ReviewWithUser
	for rows.Next() {
		var review ReviewWithUser
		err := rows.Scan(
			&review.ID,
			&review.ReviewerID,
			&review.MediaID,
			&review.Rating,
			&review.Description,
			&review.Active,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.ReviewerUsername,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Description,
		review.Active,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
