package repository

import (
	"context"

	"gorm.io/gorm"

	"holocron/internal/database"
	"holocron/internal/domain"
	"holocron/internal/models"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Create(ctx context.Context, f *models.Favorite) error {
	return database.Conn(ctx, r.db).Create(f).Error
}

// Find returns the favorite of userID pointing at target.
func (r *FavoriteRepository) Find(ctx context.Context, userID uint, target domain.Target) (*models.Favorite, error) {
	if !target.Kind.Valid() {
		return nil, domain.ErrUnknownKind
	}
	var f models.Favorite
	err := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Where(target.Kind.Column()+" = ?", target.ID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes every favorite of userID pointing at target and returns the
// number of rows removed.
func (r *FavoriteRepository) Delete(ctx context.Context, userID uint, target domain.Target) (int64, error) {
	if !target.Kind.Valid() {
		return 0, domain.ErrUnknownKind
	}
	res := database.Conn(ctx, r.db).
		Where("user_id = ?", userID).
		Where(target.Kind.Column()+" = ?", target.ID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}

func (r *FavoriteRepository) ListByUserID(ctx context.Context, userID uint) ([]models.Favorite, error) {
	list := []models.Favorite{}
	err := database.Conn(ctx, r.db).Where("user_id = ?", userID).Order("id ASC").Find(&list).Error
	return list, err
}
