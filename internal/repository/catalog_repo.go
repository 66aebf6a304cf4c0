package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"holocron/internal/database"
	"holocron/internal/models"
)

// CatalogEntity is a read-only catalog row keyed by id and a unique name.
type CatalogEntity interface {
	models.Planet | models.Character | models.Vehicle
}

// CatalogRepository reads one catalog table. Writes only happen through Upsert,
// which the seed command uses.
type CatalogRepository[T CatalogEntity] struct {
	db *gorm.DB
}

func NewPlanetRepository(db *gorm.DB) *CatalogRepository[models.Planet] {
	return &CatalogRepository[models.Planet]{db: db}
}

func NewCharacterRepository(db *gorm.DB) *CatalogRepository[models.Character] {
	return &CatalogRepository[models.Character]{db: db}
}

func NewVehicleRepository(db *gorm.DB) *CatalogRepository[models.Vehicle] {
	return &CatalogRepository[models.Vehicle]{db: db}
}

func (r *CatalogRepository[T]) List(ctx context.Context) ([]T, error) {
	var list []T
	err := database.Conn(ctx, r.db).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *CatalogRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var e T
	if err := database.Conn(ctx, r.db).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *CatalogRepository[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var c int64
	err := database.Conn(ctx, r.db).Model(new(T)).Where("id = ?", id).Count(&c).Error
	return c > 0, err
}

func (r *CatalogRepository[T]) Count(ctx context.Context) (int64, error) {
	var c int64
	err := database.Conn(ctx, r.db).Model(new(T)).Count(&c).Error
	return c, err
}

// Upsert inserts rows or updates the existing row with the same name.
func (r *CatalogRepository[T]) Upsert(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return database.Conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&rows).Error
}
