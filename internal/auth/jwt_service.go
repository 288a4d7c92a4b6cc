package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 24 * time.Hour
	// ResetTokenExpiry is the duration for which password reset tokens are valid.
	ResetTokenExpiry = 15 * time.Minute
)

// ErrInvalidToken is returned for every token verification failure: expired,
// malformed, wrong secret or wrong signing method. Callers never learn which.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims represents the claims carried by an access token.
type AccessClaims struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// ResetClaims represents the claims carried by a password reset token.
type ResetClaims struct {
	Username string `json:"username"`
	UserID   uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies the two token profiles. Access and reset
// tokens use distinct secrets so one can never be replayed as the other.
type JWTService struct {
	accessSecret []byte
	resetSecret  []byte
}

// NewJWTService creates a new JWT service with the given secrets.
func NewJWTService(accessSecret, resetSecret string) *JWTService {
	return &JWTService{
		accessSecret: []byte(accessSecret),
		resetSecret:  []byte(resetSecret),
	}
}

// GenerateAccessToken generates a signed access token asserting the user's identity.
func (s *JWTService) GenerateAccessToken(userID uint, username, email, name string) (string, error) {
	claims := &AccessClaims{
		Username: username,
		UserID:   userID,
		Email:    email,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.accessSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GenerateResetToken generates a short-lived, single-purpose token proving the
// holder received the password reset email for this user.
func (s *JWTService) GenerateResetToken(userID uint, username string) (string, error) {
	claims := &ResetClaims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ResetTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.resetSecret)
}

// ValidateResetToken verifies a password reset token and returns its claims.
func (s *JWTService) ValidateResetToken(tokenString string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.resetSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
