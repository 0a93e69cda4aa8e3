package response

import (
	"github.com/TheOfficialNikolaStoykov/imdb-restful-api/internal/data/entity"
)

// RegisterResponse is the account summary returned on registration.
type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Helper converters
func RegisterToResponse(user *entity.User, token *entity.AuthToken) RegisterResponse {
	return RegisterResponse{
		Username: user.Username,
		Email:    user.Email,
		Token:    token.Key.String(),
	}
}
