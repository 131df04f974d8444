package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"file-share-api/internal/domain/user"
)

type Service struct {
	jwtSecret string
	now       func() time.Time
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret, now: time.Now} }

type Claims struct {
	UserID  string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateJWT(userID, email string, isAdmin bool, expiresIn time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken verifies tokenStr and returns the identity it carries.
func (s *Service) ValidateToken(tokenStr string) (user.Identity, error) {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return user.Identity{}, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return user.Identity{}, errors.New("invalid claims")
	}

	return user.Identity{UserID: id, Email: claims.Email, IsAdmin: claims.IsAdmin}, nil
}

func (s *Service) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
