package auth

import (
	"context"
	"crypto/subtle"

	"github.com/esyhub/staffpay-backend/internal/config"
	"github.com/esyhub/staffpay-backend/internal/domain/auth"
	"github.com/esyhub/staffpay-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error)
	Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error)
}

type ServiceImpl struct {
	admin      config.AdminConfig
	jwtService jwt.Service
}

func NewService(admin config.AdminConfig, jwtService jwt.Service) Service {
	return &ServiceImpl{
		admin:      admin,
		jwtService: jwtService,
	}
}

// Login checks the single-admin credential and issues an access token plus a
// refresh token for the cookie.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, string, int64, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.admin.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(req.Password))
	if !usernameMatch || passwordErr != nil {
		return auth.LoginResponse{}, "", 0, auth.ErrInvalidCredentials
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(req.Username)
	if err != nil {
		return auth.LoginResponse{}, "", 0, err
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   accessExpiresAt,
	}, refreshToken, refreshExpiresAt, nil
}

func (s *ServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	username, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(username)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}
