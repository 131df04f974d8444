package ports

import (
	"time"

	"file-share-api/internal/domain/user"
)

type TokenService interface {
	GenerateJWT(userID, email string, isAdmin bool, expiresIn time.Duration) (string, error)
	ValidateToken(tokenStr string) (user.Identity, error)
}
