package services

import (
	"errors"
	"strconv"
	"time"

	"user-resource-api/internal/application/ports"
	"user-resource-api/internal/domain/user"
	"user-resource-api/internal/infrastructure/jwt"
)

const DefaultRole = "user"

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	jwtService *jwt.Service
	hasher     ports.PasswordHasher
	tokenTTL   time.Duration
}

func NewAuthService(
	jwtService *jwt.Service,
	hasher ports.PasswordHasher,
	tokenTTL time.Duration,
) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
		hasher:     hasher,
		tokenTTL:   tokenTTL,
	}
}

// GenerateToken never issues a token for a soft-deleted user.
func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	if u == nil || !u.Active() {
		return "", ErrInvalidCredentials
	}
	if err := as.hasher.Compare(u.PasswordHash, requestPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(strconv.FormatInt(int64(u.ID), 10), DefaultRole, as.tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
