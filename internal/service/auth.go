package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"church-site-backend/internal/config"
	"church-site-backend/internal/dto"
	"church-site-backend/internal/repository"
)

var ErrInvalidLogin = errors.New("invalid email or password")

type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	ValidateToken(tokenStr string) (jwt.MapClaims, error)
}

type authServiceImpl struct {
	adminRepo repository.AdminRepository
	secret    []byte
	tokenTTL  time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, adminCfg config.Admin) AuthService {
	return &authServiceImpl{
		adminRepo: adminRepo,
		secret:    []byte(adminCfg.JWTSecret),
		tokenTTL:  time.Duration(adminCfg.TokenTTLMin) * time.Minute,
	}
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidLogin
	}

	claims := jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"role":  admin.Role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		Name:  admin.Name,
		Role:  admin.Role,
	}, nil
}

func (s *authServiceImpl) ValidateToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
