package repository

import (
	"context"

	"gorm.io/gorm"

	"albumify/internal/model"
)

// AlbumRepository defines persistence operations over albums.
type AlbumRepository interface {
	Create(ctx context.Context, album *model.Album) error
	FindByID(ctx context.Context, id uint) (*model.Album, error)
	ListByUserID(ctx context.Context, userID uint) ([]model.Album, error)
	Update(ctx context.Context, album *model.Album) error
	Delete(ctx context.Context, id uint) error
}

type albumRepository struct {
	db *gorm.DB
}

// NewAlbumRepository builds a GORM-backed repository.
func NewAlbumRepository(db *gorm.DB) AlbumRepository {
	return &albumRepository{db: db}
}

func (r *albumRepository) Create(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Create(album).Error
}

func (r *albumRepository) FindByID(ctx context.Context, id uint) (*model.Album, error) {
	var album model.Album
	if err := r.db.WithContext(ctx).First(&album, id).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *albumRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Album, error) {
	var albums []model.Album
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

func (r *albumRepository) Update(ctx context.Context, album *model.Album) error {
	return r.db.WithContext(ctx).Save(album).Error
}

func (r *albumRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Album{}, id).Error
}
