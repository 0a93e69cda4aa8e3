package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrTokenNotFound is returned when a delete targets an unknown token key.
var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	// FindUserByKey resolves a presented token key to its user in one query.
	// Returns (nil, nil) when the key is unknown, i.e. missing or revoked.
	FindUserByKey(ctx context.Context, key string) (*entity.User, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error)
	DeleteByKey(ctx context.Context, key string) error
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (key, user_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query,
		token.Key,
		token.UserID,
		token.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

func (r *tokenRepository) FindUserByKey(ctx context.Context, key string) (*entity.User, error) {
	// Keys are uuids; anything else can never match a row and must read
	// as unknown, not as a query failure.
	parsed, err := uuid.Parse(key)
	if err != nil {
		return nil, nil
	}

	query := `
		SELECT u.id, u.username, u.email, u.password, u.is_staff,
		       u.created_at, u.updated_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1
	`

	user, err := scanUser(r.db.QueryRow(ctx, query, parsed))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user by token", zap.Error(err))
		return nil, fmt.Errorf("find user by token: %w", err)
	}

	return user, nil
}

func (r *tokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.AuthToken, error) {
	query := `
		SELECT key, user_id, created_at
		FROM auth_tokens
		WHERE user_id = $1
	`

	var token entity.AuthToken
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&token.Key,
		&token.UserID,
		&token.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find token by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find token by user ID %s: %w", userID.String(), err)
	}

	return &token, nil
}

func (r *tokenRepository) DeleteByKey(ctx context.Context, key string) error {
	parsed, err := uuid.Parse(key)
	if err != nil {
		return ErrTokenNotFound
	}

	query := `DELETE FROM auth_tokens WHERE key = $1`

	result, err := r.db.Exec(ctx, query, parsed)
	if err != nil {
		r.log.Error("Failed to delete token", zap.Error(err))
		return fmt.Errorf("delete token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTokenNotFound
	}

	return nil
}
