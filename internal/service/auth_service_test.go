package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"albumify/internal/auth"
	"albumify/internal/errors"
	"albumify/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordResetEmail(to, username, resetURL string) error {
	args := m.Called(to, username, resetURL)
	return args.Error(0)
}

const testBaseURL = "http://localhost:8080"

func newTestAuthService(repo *MockUserRepository, mailer *MockMailer) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-access-secret", "test-reset-secret")
	return NewAuthService(repo, jwtService, auth.NewPasswordHasher(), mailer, testBaseURL), jwtService
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "anatorres",
			email:    "ana@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "anatorres").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = 7
					}).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "anatorres",
			email:    "new@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "anatorres").Return(&model.User{ID: 1, Username: "anatorres"}, nil)
			},
			expectedError: errors.ErrUsernameTaken,
		},
		{
			name:     "email already registered",
			username: "newuser",
			email:    "ana@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "newuser").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(&model.User{ID: 1, Email: "ana@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:     "duplicate key race maps to conflict",
			username: "anatorres",
			email:    "ana@example.com",
			setupMock: func(m *MockUserRepository) {
				// Pre-checks see nothing, a concurrent insert wins the race.
				m.On("FindByUsername", mock.Anything, "anatorres").Return(nil, gorm.ErrRecordNotFound).Once()
				m.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByUsername", mock.Anything, "anatorres").Return(&model.User{ID: 1, Username: "anatorres"}, nil).Once()
			},
			expectedError: errors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc, jwtService := newTestAuthService(mockRepo, new(MockMailer))
			user, token, err := svc.Register(context.Background(), "Ana Torres", tt.username, tt.email, "password123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NotEqual(t, "password123", user.PasswordHash)

				claims, err := jwtService.ValidateAccessToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, tt.username, claims.Username)
				assert.Equal(t, tt.email, claims.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	hashed, err := hasher.Hash("password123")
	assert.NoError(t, err)

	storedUser := &model.User{
		ID:           7,
		Name:         "Ana Torres",
		Username:     "anatorres",
		Email:        "ana@example.com",
		PasswordHash: hashed,
	}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "anatorres",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "anatorres").Return(storedUser, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "anatorres",
			password: "wrong-password",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "anatorres").Return(storedUser, nil)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc, jwtService := newTestAuthService(mockRepo, new(MockMailer))
			user, token, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)

				claims, err := jwtService.ValidateAccessToken(token)
				assert.NoError(t, err)
				assert.Equal(t, storedUser.ID, claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ForgotPassword(t *testing.T) {
	storedUser := &model.User{
		ID:       7,
		Username: "anatorres",
		Email:    "ana@example.com",
	}

	t.Run("unknown email sends nothing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc, _ := newTestAuthService(mockRepo, mockMailer)
		err := svc.ForgotPassword(context.Background(), "ghost@example.com")

		assert.ErrorIs(t, err, errors.ErrEmailNotFound)
		mockMailer.AssertNotCalled(t, "SendPasswordResetEmail", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("sends a reset link bound to the user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(storedUser, nil)

		var sentURL string
		mockMailer.On("SendPasswordResetEmail", "ana@example.com", "anatorres", mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				sentURL = args.String(2)
			}).Return(nil)

		svc, jwtService := newTestAuthService(mockRepo, mockMailer)
		err := svc.ForgotPassword(context.Background(), "ana@example.com")
		assert.NoError(t, err)

		// Link shape: {base}/newPassword/{token}/{id}
		assert.True(t, strings.HasPrefix(sentURL, testBaseURL+"/newPassword/"))
		assert.True(t, strings.HasSuffix(sentURL, "/7"))

		token := strings.TrimSuffix(strings.TrimPrefix(sentURL, testBaseURL+"/newPassword/"), "/7")
		claims, err := jwtService.ValidateResetToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "anatorres", claims.Username)

		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("mail failure surfaces as an error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(storedUser, nil)
		mockMailer.On("SendPasswordResetEmail", "ana@example.com", "anatorres", mock.AnythingOfType("string")).
			Return(assert.AnError)

		svc, _ := newTestAuthService(mockRepo, mockMailer)
		err := svc.ForgotPassword(context.Background(), "ana@example.com")
		assert.Error(t, err)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	hasher := auth.NewPasswordHasher()
	currentHash, err := hasher.Hash("old-password")
	assert.NoError(t, err)

	storedUser := &model.User{
		ID:           7,
		Username:     "anatorres",
		Email:        "ana@example.com",
		PasswordHash: currentHash,
	}

	jwtService := auth.NewJWTService("test-access-secret", "test-reset-secret")
	validToken, err := jwtService.GenerateResetToken(7, "anatorres")
	assert.NoError(t, err)
	foreignToken, err := jwtService.GenerateResetToken(99, "someoneelse")
	assert.NoError(t, err)

	newService := func(repo *MockUserRepository) AuthService {
		return NewAuthService(repo, jwtService, hasher, new(MockMailer), testBaseURL)
	}

	t.Run("password confirmation mismatch", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := newService(mockRepo)

		err := svc.ResetPassword(context.Background(), 7, validToken, "new-password", "different")
		assert.ErrorIs(t, err, errors.ErrPasswordMismatch)
		mockRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid reset token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := newService(mockRepo)

		err := svc.ResetPassword(context.Background(), 7, "not.a.token", "new-password", "new-password")
		assert.ErrorIs(t, err, errors.ErrInvalidResetToken)
		mockRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("token bound to another user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := newService(mockRepo)

		err := svc.ResetPassword(context.Background(), 7, foreignToken, "new-password", "new-password")
		assert.ErrorIs(t, err, errors.ErrInvalidResetToken)
		mockRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
		svc := newService(mockRepo)

		err := svc.ResetPassword(context.Background(), 7, validToken, "new-password", "new-password")
		assert.ErrorIs(t, err, errors.ErrUserNotFound)
	})

	t.Run("resubmitting the current password is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(storedUser, nil)
		svc := newService(mockRepo)

		err := svc.ResetPassword(context.Background(), 7, validToken, "old-password", "old-password")
		assert.ErrorIs(t, err, errors.ErrPasswordUnchanged)
		mockRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rotates the stored hash", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(storedUser, nil)

		var storedHash string
		mockRepo.On("UpdatePasswordHash", mock.Anything, uint(7), mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) {
				storedHash = args.String(2)
			}).Return(nil)

		svc := newService(mockRepo)
		err := svc.ResetPassword(context.Background(), 7, validToken, "new-password", "new-password")
		assert.NoError(t, err)

		assert.True(t, hasher.Verify("new-password", storedHash))
		assert.False(t, hasher.Verify("old-password", storedHash))
		mockRepo.AssertExpectations(t)
	})
}
