package repository

import (
	"context"

	"gorm.io/gorm"

	"holocron/internal/database"
	"holocron/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return database.Conn(ctx, r.db).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := database.Conn(ctx, r.db).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := database.Conn(ctx, r.db).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var list []models.User
	err := database.Conn(ctx, r.db).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var c int64
	err := database.Conn(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}
