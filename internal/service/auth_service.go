package service

import (
	"context"
	goerrors "errors"
	"fmt"

	"gorm.io/gorm"

	"albumify/internal/auth"
	"albumify/internal/errors"
	"albumify/internal/mail"
	"albumify/internal/model"
	"albumify/internal/repository"
)

// AuthService handles registration, login and the password recovery flows.
type AuthService interface {
	Register(ctx context.Context, name, username, email, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, userID uint, token, password, confirmPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	mailer     mail.Mailer
	apiBaseURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	hasher *auth.PasswordHasher,
	mailer mail.Mailer,
	apiBaseURL string,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
		mailer:     mailer,
		apiBaseURL: apiBaseURL,
	}
}

// Register creates a new user with a hashed password and returns the user
// together with a freshly minted access token.
func (s *authService) Register(ctx context.Context, name, username, email, password string) (*model.User, string, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, "", errors.ErrUsernameTaken
	} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check username: %w", err)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", errors.ErrEmailTaken
	} else if !goerrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The pre-checks race with concurrent registrations; a duplicate key
		// from the unique indexes gets the same answer as the pre-check.
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			if _, uErr := s.userRepo.FindByUsername(ctx, username); uErr == nil {
				return nil, "", errors.ErrUsernameTaken
			}
			return nil, "", errors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, user.Email, user.Name)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns an access token. An unknown username
// and a wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, user.Email, user.Name)
	if err != nil {
		return nil, "", fmt.Errorf("generate access token: %w", err)
	}

	return user, token, nil
}

// ForgotPassword mints a reset token for the owner of email and sends it as a
// link by mail. The token itself never appears in the HTTP response.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrEmailNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.jwtService.GenerateResetToken(user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/newPassword/%s/%d", s.apiBaseURL, token, user.ID)
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Username, resetURL); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	return nil
}

// ResetPassword rotates a user's password after verifying the reset token
// against the user id in the request path. Resubmitting the current password
// is a distinct no-op (ErrPasswordUnchanged) that leaves the hash untouched.
func (s *authService) ResetPassword(ctx context.Context, userID uint, token, password, confirmPassword string) error {
	if password != confirmPassword {
		return errors.ErrPasswordMismatch
	}

	claims, err := s.jwtService.ValidateResetToken(token)
	if err != nil {
		return errors.ErrInvalidResetToken
	}
	if claims.UserID != userID {
		return errors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if s.hasher.Verify(password, user.PasswordHash) {
		return errors.ErrPasswordUnchanged
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}
