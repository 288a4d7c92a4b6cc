package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"albumify/internal/cache"
	"albumify/internal/errors"
	"albumify/internal/model"
	"albumify/internal/repository"
)

const albumCacheTTL = 5 * time.Minute

// AlbumService handles album operations.
type AlbumService interface {
	ListByUser(ctx context.Context, userID uint) ([]model.Album, error)
	Get(ctx context.Context, id uint) (*model.Album, error)
	Create(ctx context.Context, userID uint, name string) (*model.Album, error)
	Rename(ctx context.Context, id uint, name string) (*model.Album, error)
	Delete(ctx context.Context, id uint) error
}

type albumService struct {
	repo  repository.AlbumRepository
	cache *cache.Client
}

// NewAlbumService creates a new album service.
func NewAlbumService(repo repository.AlbumRepository, cache *cache.Client) AlbumService {
	return &albumService{
		repo:  repo,
		cache: cache,
	}
}

func (s *albumService) albumKey(id uint) string {
	return fmt.Sprintf("album:%d", id)
}

func (s *albumService) userAlbumsKey(userID uint) string {
	return fmt.Sprintf("albums:user:%d", userID)
}

// ListByUser returns a user's albums with caching. A user with no albums gets
// ErrAlbumNotFound rather than an empty list.
func (s *albumService) ListByUser(ctx context.Context, userID uint) ([]model.Album, error) {
	var cached []model.Album
	if s.cache.GetJSON(ctx, s.userAlbumsKey(userID), &cached) && len(cached) > 0 {
		return cached, nil
	}

	albums, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	if len(albums) == 0 {
		return nil, errors.ErrAlbumNotFound
	}

	s.cache.SetJSON(ctx, s.userAlbumsKey(userID), albums, albumCacheTTL)
	return albums, nil
}

// Get retrieves an album by ID with caching.
func (s *albumService) Get(ctx context.Context, id uint) (*model.Album, error) {
	var cached model.Album
	if s.cache.GetJSON(ctx, s.albumKey(id), &cached) && cached.ID != 0 {
		return &cached, nil
	}

	album, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}

	s.cache.SetJSON(ctx, s.albumKey(id), album, albumCacheTTL)
	return album, nil
}

// Create adds an album for the user.
func (s *albumService) Create(ctx context.Context, userID uint, name string) (*model.Album, error) {
	album := &model.Album{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.Create(ctx, album); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}

	_ = s.cache.Delete(ctx, s.userAlbumsKey(userID))
	return album, nil
}

// Rename changes an album's name.
func (s *albumService) Rename(ctx context.Context, id uint, name string) (*model.Album, error) {
	album, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("find album: %w", err)
	}

	album.Name = name
	if err := s.repo.Update(ctx, album); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}

	_ = s.cache.Delete(ctx, s.albumKey(id))
	_ = s.cache.Delete(ctx, s.userAlbumsKey(album.UserID))
	return album, nil
}

// Delete removes an album.
func (s *albumService) Delete(ctx context.Context, id uint) error {
	album, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrAlbumNotFound
		}
		return fmt.Errorf("find album: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete album: %w", err)
	}

	_ = s.cache.Delete(ctx, s.albumKey(id))
	_ = s.cache.Delete(ctx, s.userAlbumsKey(album.UserID))
	return nil
}
