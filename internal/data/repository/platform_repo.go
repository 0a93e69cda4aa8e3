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

type PlatformRepository interface {
	Create(ctx context.Context, platform *entity.Platform) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Platform, error)
	FindAll(ctx context.Context) ([]*entity.Platform, error)
	Update(ctx context.Context, platform *entity.Platform) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type platformRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPlatformRepository(db database.PgxIface, log *zap.Logger) PlatformRepository {
	return &platformRepository{
		db:  db,
		log: log.With(zap.String("repository", "platform")),
	}
}

func (r *platformRepository) Create(ctx context.Context, platform *entity.Platform) error {
	query := `
		INSERT INTO platforms (id, name, about, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		platform.ID,
		platform.Name,
		platform.About,
		platform.Website,
		platform.CreatedAt,
		platform.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create platform",
			zap.Error(err),
			zap.String("name", platform.Name),
		)
		return fmt.Errorf("create platform %s: %w", platform.Name, err)
	}

	return nil
}

func (r *platformRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Platform, error) {
	query := `
		SELECT id, name, about, website, created_at, updated_at
		FROM platforms
		WHERE id = $1
	`

	var platform entity.Platform
	err := r.db.QueryRow(ctx, query, id).Scan(
		&platform.ID,
		&platform.Name,
		&platform.About,
		&platform.Website,
		&platform.CreatedAt,
		&platform.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find platform by ID",
			zap.Error(err),
			zap.String("platform_id", id.String()),
		)
		return nil, fmt.Errorf("find platform by ID %s: %w", id.String(), err)
	}

	return &platform, nil
}

func (r *platformRepository) FindAll(ctx context.Context) ([]*entity.Platform, error) {
	query := `
		SELECT id, name, about, website, created_at, updated_at
		FROM platforms
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all platforms", zap.Error(err))
		return nil, fmt.Errorf("find all platforms: %w", err)
	}
	defer rows.Close()

	var platforms []*entity.Platform
	for rows.Next() {
		var platform entity.Platform
		err := rows.Scan(
			&platform.ID,
			&platform.Name,
			&platform.About,
			&platform.Website,
			&platform.CreatedAt,
			&platform.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan platform row", zap.Error(err))
			return nil, fmt.Errorf("scan platform row: %w", err)
		}
		platforms = append(platforms, &platform)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate platform rows: %w", err)
	}

	return platforms, nil
}

func (r *platformRepository) Update(ctx context.Context, platform *entity.Platform) error {
	query := `
		UPDATE platforms
		SET name = $2, about = $3, website = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		platform.ID,
		platform.Name,
		platform.About,
		platform.Website,
		platform.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update platform",
			zap.Error(err),
			zap.String("platform_id", platform.ID.String()),
		)
		return fmt.Errorf("update platform %s: %w", platform.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("platform %s not found", platform.ID.String())
	}

	return nil
}

func (r *platformRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// owned media rows (and their reviews) go with it via ON DELETE CASCADE
	query := `DELETE FROM platforms WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete platform",
			zap.Error(err),
			zap.String("platform_id", id.String()),
		)
		return fmt.Errorf("delete platform %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("platform %s not found", id.String())
	}

	r.log.Info("Platform deleted", zap.String("platform_id", id.String()))
	return nil
}
