package service

import (
	"context"
	"fmt"
	"time"

	"suggestion-board/internal/ports/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates the single admin role. The board has no public
// accounts: visitors are anonymous, and admin credentials are provisioned
// through configuration rather than a users table.
type AuthService struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         string
	jwtExpire         time.Duration
}

func NewAuthService(adminEmail, adminPasswordHash, jwtSecret string, jwtExpire time.Duration) *AuthService {
	return &AuthService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		jwtExpire:         jwtExpire,
	}
}

// LoginRequest defines the input for admin login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token
type LoginResponse struct {
	Token string `json:"token"`
}

// Login checks admin credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email != s.adminEmail {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrAuthorization)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.adminPasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", models.ErrAuthorization)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin",
		"email": req.Email,
		"exp":   time.Now().Add(s.jwtExpire).Unix(),
	})

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: tokenString}, nil
}
