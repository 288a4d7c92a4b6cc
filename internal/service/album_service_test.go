package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"albumify/internal/cache"
	"albumify/internal/errors"
	"albumify/internal/model"
)

// MockAlbumRepository is a mock implementation of AlbumRepository.
type MockAlbumRepository struct {
	mock.Mock
}

func (m *MockAlbumRepository) Create(ctx context.Context, album *model.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}

func (m *MockAlbumRepository) FindByID(ctx context.Context, id uint) (*model.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Album), args.Error(1)
}

func (m *MockAlbumRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Album, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Album), args.Error(1)
}

func (m *MockAlbumRepository) Update(ctx context.Context, album *model.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}

func (m *MockAlbumRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Tests run with a nil cache client; the wrapper treats it as a permanent miss.
var noCache *cache.Client

func TestAlbumService_ListByUser(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		setupMock     func(*MockAlbumRepository)
		expectedCount int
		expectedError error
	}{
		{
			name:   "returns the user's albums",
			userID: 1,
			setupMock: func(m *MockAlbumRepository) {
				m.On("ListByUserID", mock.Anything, uint(1)).Return([]model.Album{
					{ID: 4, Name: "Paraiso", UserID: 1},
					{ID: 5, Name: "Vacaciones 2024", UserID: 1},
				}, nil)
			},
			expectedCount: 2,
		},
		{
			name:   "no albums is not found",
			userID: 2,
			setupMock: func(m *MockAlbumRepository) {
				m.On("ListByUserID", mock.Anything, uint(2)).Return([]model.Album{}, nil)
			},
			expectedError: errors.ErrAlbumNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAlbumRepository)
			tt.setupMock(mockRepo)

			svc := NewAlbumService(mockRepo, noCache)
			albums, err := svc.ListByUser(context.Background(), tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, albums)
			} else {
				assert.NoError(t, err)
				assert.Len(t, albums, tt.expectedCount)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAlbumService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.Album{ID: 4, Name: "Paraiso", UserID: 1}, nil)

		svc := NewAlbumService(mockRepo, noCache)
		album, err := svc.Get(context.Background(), 4)

		assert.NoError(t, err)
		assert.Equal(t, "Paraiso", album.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAlbumService(mockRepo, noCache)
		_, err := svc.Get(context.Background(), 99)

		assert.ErrorIs(t, err, errors.ErrAlbumNotFound)
	})
}

func TestAlbumService_Create(t *testing.T) {
	mockRepo := new(MockAlbumRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Album")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*model.Album).ID = 10
		}).Return(nil)

	svc := NewAlbumService(mockRepo, noCache)
	album, err := svc.Create(context.Background(), 1, "Familia")

	assert.NoError(t, err)
	assert.Equal(t, uint(10), album.ID)
	assert.Equal(t, "Familia", album.Name)
	assert.Equal(t, uint(1), album.UserID)
	mockRepo.AssertExpectations(t)
}

func TestAlbumService_Rename(t *testing.T) {
	t.Run("renames an existing album", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.Album{ID: 4, Name: "Paraiso", UserID: 1}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Album) bool {
			return a.ID == 4 && a.Name == "Paraiso 2"
		})).Return(nil)

		svc := NewAlbumService(mockRepo, noCache)
		album, err := svc.Rename(context.Background(), 4, "Paraiso 2")

		assert.NoError(t, err)
		assert.Equal(t, "Paraiso 2", album.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent album", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAlbumService(mockRepo, noCache)
		_, err := svc.Rename(context.Background(), 99, "whatever")

		assert.ErrorIs(t, err, errors.ErrAlbumNotFound)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestAlbumService_Delete(t *testing.T) {
	t.Run("deletes an existing album", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, uint(4)).Return(&model.Album{ID: 4, Name: "Paraiso", UserID: 1}, nil)
		mockRepo.On("Delete", mock.Anything, uint(4)).Return(nil)

		svc := NewAlbumService(mockRepo, noCache)
		assert.NoError(t, svc.Delete(context.Background(), 4))
		mockRepo.AssertExpectations(t)
	})

	t.Run("absent album", func(t *testing.T) {
		mockRepo := new(MockAlbumRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAlbumService(mockRepo, noCache)
		err := svc.Delete(context.Background(), 99)

		assert.ErrorIs(t, err, errors.ErrAlbumNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
