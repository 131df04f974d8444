package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/apperr"
	"file-share-api/internal/domain/notification"
	domain "file-share-api/internal/domain/user"
)

const (
	msgEmailRegistered    = "Email already registered"
	msgEmailTaken         = "Email already taken"
	msgInvalidCredentials = "Invalid email or password"
	msgWrongPassword      = "Current password is incorrect"
	msgUserNotFound       = "User not found"
	msgNoFields           = "No fields to update"
)

type AuthService struct {
	userRepository domain.Repository
	tokens         ports.TokenService
	notifier       ports.Notifier
	mCounter       *prometheus.CounterVec
	tokenTTL       time.Duration
	bcryptCost     int
	now            func() time.Time
}

func NewAuthService(
	userRepository domain.Repository,
	tokens ports.TokenService,
	notifier ports.Notifier,
	mCounter *prometheus.CounterVec,
	tokenTTL time.Duration,
) ports.AuthService {
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
		notifier:       notifier,
		mCounter:       mCounter,
		tokenTTL:       tokenTTL,
		bcryptCost:     bcrypt.DefaultCost,
		now:            time.Now,
	}
}

func (as *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	existing, err := as.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.ErrConflict, msgEmailRegistered)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := as.userRepository.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return nil, apperr.New(apperr.ErrConflict, msgEmailRegistered)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s, err := as.session(u)
	if err != nil {
		return nil, err
	}

	as.mCounter.WithLabelValues("user_registered_total").Inc()

	e := notification.New(notification.KindUserRegistered, u.Email, as.now())
	e.Name = u.Name
	_ = as.notifier.Publish(e)

	return s, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("fetch user by email: %w", err)
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		as.mCounter.WithLabelValues("login_failed_total").Inc()
		return nil, apperr.New(apperr.ErrUnauthorized, msgInvalidCredentials)
	}

	return as.session(u)
}

func (as *AuthService) Me(ctx context.Context, id domain.UUID) (*domain.User, error) {
	u, err := as.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if u == nil {
		return nil, apperr.NotFound(msgUserNotFound)
	}

	return u, nil
}

func (as *AuthService) UpdateProfile(ctx context.Context, id domain.UUID, name, email *string) (*domain.User, error) {
	if name == nil && email == nil {
		return nil, apperr.Validation(msgNoFields)
	}

	u, err := as.Me(ctx, id)
	if err != nil {
		return nil, err
	}

	newName, newEmail := u.Name, u.Email
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	if email != nil {
		newEmail = normalizeEmail(*email)
		other, err := as.userRepository.FetchUserByEmail(ctx, newEmail)
		if err != nil {
			return nil, fmt.Errorf("fetch user by email: %w", err)
		}
		if other != nil && other.UUID != id {
			return nil, apperr.New(apperr.ErrConflict, msgEmailTaken)
		}
	}

	out, err := as.userRepository.UpdateProfile(ctx, id, newName, newEmail)
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return nil, apperr.New(apperr.ErrConflict, msgEmailTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if out == nil {
		return nil, apperr.NotFound(msgUserNotFound)
	}

	as.mCounter.WithLabelValues("user_updated_total").Inc()

	return out, nil
}

func (as *AuthService) ChangePassword(ctx context.Context, id domain.UUID, current, next string) error {
	u, err := as.Me(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return apperr.New(apperr.ErrUnauthorized, msgWrongPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), as.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err = as.userRepository.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	as.mCounter.WithLabelValues("password_changed_total").Inc()

	return nil
}

func (as *AuthService) session(u *domain.User) (*domain.Session, error) {
	token, err := as.tokens.GenerateJWT(u.UUID.String(), u.Email, u.IsAdmin, as.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &domain.Session{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
