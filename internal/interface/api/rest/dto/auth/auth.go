package auth

import (
	domain "file-share-api/internal/domain/user"
	"file-share-api/internal/interface/api/rest/dto/user"
)

type (
	RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	ProfileRequest struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}

	ChangePasswordRequest struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	Response struct {
		Token     string    `json:"token"`
		TokenType string    `json:"tokenType"`
		User      user.User `json:"user"`
	}
)

func ToResponse(s domain.Session) Response {
	return Response{Token: s.Token, TokenType: "Bearer", User: user.ToResponseUser(*s.User)}
}
