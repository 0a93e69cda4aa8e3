package repository

import (
	"context"
	"fmt"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MediaRepository interface {
	Create(ctx context.Context, media *entity.Media) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Media, error)
	FindAll(ctx context.Context) ([]*entity.Media, error)
	FindByPlatformID(ctx context.Context, platformID uuid.UUID) ([]*entity.Media, error)
	Update(ctx context.Context, media *entity.Media) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMediaRepository(db database.PgxIface, log *zap.Logger) MediaRepository {
	return &mediaRepository{
		db:  db,
		log: log.With(zap.String("repository", "media")),
	}
}

const mediaColumns = `id, title, storyline, platform_id, active, avg_rating, rating_count, created_at`

func scanMedia(row pgx.Row) (*entity.Media, error) {
	var media entity.Media
	err := row.Scan(
		&media.ID,
		&media.Title,
		&media.Storyline,
		&media.PlatformID,
		&media.Active,
		&media.AvgRating,
		&media.UserRating,
		&media.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *mediaRepository) Create(ctx context.Context, media *entity.Media) error {
	query := `
		INSERT INTO media (id, title, storyline, platform_id, active,
		                   avg_rating, rating_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		media.ID,
		media.Title,
		media.Storyline,
		media.PlatformID,
		media.Active,
		media.AvgRating,
		media.UserRating,
		media.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create media",
			zap.Error(err),
			zap.String("title", media.Title),
			zap.String("platform_id", media.PlatformID.String()),
		)
		return fmt.Errorf("create media %s: %w", media.Title, err)
	}

	return nil
}

func (r *mediaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE id = $1`

	media, err := scanMedia(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find media by ID",
			zap.Error(err),
			zap.String("media_id", id.String()),
		)
		return nil, fmt.Errorf("find media by ID %s: %w", id.String(), err)
	}

	return media, nil
}

func (r *mediaRepository) FindAll(ctx context.Context) ([]*entity.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all media", zap.Error(err))
		return nil, fmt.Errorf("find all media: %w", err)
	}
	defer rows.Close()

	return r.collectMedia(rows)
}

func (r *mediaRepository) FindByPlatformID(ctx context.Context, platformID uuid.UUID) ([]*entity.Media, error) {
	query := `SELECT ` + mediaColumns + ` FROM media WHERE platform_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, platformID)
	if err != nil {
		r.log.Error("Failed to find media by platform ID",
			zap.Error(err),
			zap.String("platform_id", platformID.String()),
		)
		return nil, fmt.Errorf("find media by platform ID %s: %w", platformID.String(), err)
	}
	defer rows.Close()

	return r.collectMedia(rows)
}

func (r *mediaRepository) collectMedia(rows pgx.Rows) ([]*entity.Media, error) {
	var mediaList []*entity.Media
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			r.log.Error("Failed to scan media row", zap.Error(err))
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		mediaList = append(mediaList, media)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate media rows: %w", err)
	}

	return mediaList, nil
}

// Update writes the caller-editable fields. The aggregate columns
// avg_rating and rating_count are owned by the review submission
// transaction and are deliberately not touched here.
func (r *mediaRepository) Update(ctx context.Context, media *entity.Media) error {
	query := `
		UPDATE media
		SET title = $2, storyline = $3, platform_id = $4, active = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		media.ID,
		media.Title,
		media.Storyline,
		media.PlatformID,
		media.Active,
	)

	if err != nil {
		r.log.Error("Failed to update media",
			zap.Error(err),
			zap.String("media_id", media.ID.String()),
		)
		return fmt.Errorf("update media %s: %w", media.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s not found", media.ID.String())
	}

	return nil
}

func (r *mediaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// owned reviews go with it via ON DELETE CASCADE
	query := `DELETE FROM media WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete media",
			zap.Error(err),
			zap.String("media_id", id.String()),
		)
		return fmt.Errorf("delete media %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s not found", id.String())
	}

	r.log.Info("Media deleted", zap.String("media_id", id.String()))
	return nil
}
