package service

import (
	"errors"
	"fmt"
	"time"

	"moviehub/internal/api/dto"
	"moviehub/internal/config"
	"moviehub/internal/middleware/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultRole = "User"
	tokenIssuer = "moviehub"
)

// Claims carried by every access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(password string) (*dto.AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	jwtSecret    []byte
	tokenTTL     time.Duration
	passwordHash string
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		jwtSecret:    []byte(cfg.JWTSecret),
		tokenTTL:     cfg.JWTExpiry,
		passwordHash: cfg.AdminPasswordHash,
	}
}

// Login issues an access token. When no admin password hash is configured
// every caller is accepted.
func (s *authService) Login(password string) (*dto.AuthResponse, error) {
	if s.passwordHash != "" {
		if err := auth.VerifyPassword(s.passwordHash, password); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	now := time.Now()
	claims := Claims{
		Role: DefaultRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.AuthResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
