package middleware

import (
	"net/http"
	"strings"

	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/access"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/repository"
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}

// Auth validates the bearer token and requires an authenticated caller.
func Auth(tokenRepo repository.TokenRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or malformed authorization header. Use: Bearer <token>")
				return
			}

			user, err := tokenRepo.FindUserByKey(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Invalid token presented", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.IsStaff)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthOptional resolves the caller identity when a token is presented but
// lets anonymous requests through. A presented-but-invalid token is still
// rejected, so a logged-out token can never be reused anywhere.
func AuthOptional(tokenRepo repository.TokenRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := tokenRepo.FindUserByKey(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate token", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				utils.ResponseUnauthorized(w, "Invalid token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.IsStaff)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOrReadOnly enforces the admin-or-read-only policy: reads pass
// through untouched, writes require a staff caller. Mount after AuthOptional.
func AdminOrReadOnly(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFromContext(r)

			if !access.Allow(access.AdminOrReadOnly, r.Method, caller, uuid.Nil) {
				if !caller.Authenticated {
					utils.ResponseUnauthorized(w, "Authentication required")
					return
				}
				logger.Warn("Non-admin write attempt",
					zap.String("user_id", caller.ID.String()),
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method),
				)
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthenticatedOrReadOnly lets reads through and requires any
// authenticated caller for writes. Mount after AuthOptional.
func AuthenticatedOrReadOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFromContext(r)

			if !access.Allow(access.AuthenticatedOrReadOnly, r.Method, caller, uuid.Nil) {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CallerFromContext builds the policy caller from request context.
func CallerFromContext(r *http.Request) access.Caller {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return access.Caller{}
	}

	return access.Caller{
		ID:            userID,
		IsStaff:       utils.GetStaffFromContext(r.Context()),
		Authenticated: true,
	}
}
