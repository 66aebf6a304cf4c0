package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"holocron/internal/database"
	"holocron/internal/domain"
	apperrors "holocron/internal/errors"
	"holocron/internal/logger"
	"holocron/internal/models"
	"holocron/internal/repository"
)

// FavoritePublisher receives favorite changes after they are committed.
type FavoritePublisher interface {
	PublishFavorite(userID uint, event string, f *models.Favorite)
}

// FavoriteStore is the favorite persistence the service needs;
// *repository.FavoriteRepository implements it.
type FavoriteStore interface {
	Create(ctx context.Context, f *models.Favorite) error
	Find(ctx context.Context, userID uint, target domain.Target) (*models.Favorite, error)
	Delete(ctx context.Context, userID uint, target domain.Target) (int64, error)
	ListByUserID(ctx context.Context, userID uint) ([]models.Favorite, error)
}

type FavoriteService struct {
	tx            *database.TxManager
	favRepo       FavoriteStore
	userRepo      *repository.UserRepository
	planetRepo    *repository.CatalogRepository[models.Planet]
	characterRepo *repository.CatalogRepository[models.Character]
	vehicleRepo   *repository.CatalogRepository[models.Vehicle]
	publisher     FavoritePublisher
}

func NewFavoriteService(
	tx *database.TxManager,
	favRepo FavoriteStore,
	userRepo *repository.UserRepository,
	planetRepo *repository.CatalogRepository[models.Planet],
	characterRepo *repository.CatalogRepository[models.Character],
	vehicleRepo *repository.CatalogRepository[models.Vehicle],
	publisher FavoritePublisher,
) *FavoriteService {
	return &FavoriteService{
		tx:            tx,
		favRepo:       favRepo,
		userRepo:      userRepo,
		planetRepo:    planetRepo,
		characterRepo: characterRepo,
		vehicleRepo:   vehicleRepo,
		publisher:     publisher,
	}
}

func (s *FavoriteService) targetExists(ctx context.Context, target domain.Target) (bool, error) {
	switch target.Kind {
	case domain.KindPlanet:
		return s.planetRepo.Exists(ctx, target.ID)
	case domain.KindCharacter:
		return s.characterRepo.Exists(ctx, target.ID)
	case domain.KindVehicle:
		return s.vehicleRepo.Exists(ctx, target.ID)
	}
	return false, apperrors.NewValidationError("unknown favorite kind", string(target.Kind))
}

func userNotFound(userID uint) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("User %d not found", userID))
}

// Add marks target as a favorite of userID. The target is checked before the user.
// An existing favorite is returned with created=false and no row is added.
func (s *FavoriteService) Add(ctx context.Context, userID uint, target domain.Target) (*models.Favorite, bool, error) {
	var (
		fav     *models.Favorite
		created bool
	)
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.targetExists(ctx, target)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NewNotFoundError(target.Kind.Label() + " not found")
		}

		ok, err = s.userRepo.Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !ok {
			return userNotFound(userID)
		}

		existing, err := s.favRepo.Find(ctx, userID, target)
		if err == nil {
			fav = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		f := models.NewFavorite(userID, target)
		if err := s.favRepo.Create(ctx, f); err != nil {
			return err
		}
		fav, created = f, true
		return nil
	})

	if err != nil && apperrors.IsDuplicateError(err) {
		// a concurrent request inserted the same pair first
		existing, findErr := s.favRepo.Find(ctx, userID, target)
		if findErr != nil {
			return nil, false, apperrors.FromDB(findErr, "Favorite not found")
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperrors.FromDB(err, "Favorite not found")
	}

	if created {
		logger.WithComponent("favorites").Debug("favorite added", "user_id", userID, "target", target.String())
		s.publish(userID, domain.EventFavoriteAdded, fav)
	}
	return fav, created, nil
}

// Remove deletes the favorites of userID pointing at target and publishes the
// stored row that was removed.
func (s *FavoriteService) Remove(ctx context.Context, userID uint, target domain.Target) error {
	var removed *models.Favorite
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		f, err := s.favRepo.Find(ctx, userID, target)
		if err != nil {
			return err
		}
		if got, ok := f.Target(); !ok || got != target {
			return apperrors.NewInternalError("Server error",
				fmt.Errorf("favorite %d does not point at exactly %s", f.ID, target))
		}
		if _, err := s.favRepo.Delete(ctx, userID, target); err != nil {
			return err
		}
		removed = f
		return nil
	})
	if err != nil {
		return apperrors.FromDB(err, "Favorite not found")
	}
	s.publish(userID, domain.EventFavoriteRemoved, removed)
	return nil
}

// ListByUser returns the raw favorite rows of an existing user.
func (s *FavoriteService) ListByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	ok, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	if !ok {
		return nil, userNotFound(userID)
	}
	list, err := s.favRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.FromDB(err, "")
	}
	return list, nil
}

func (s *FavoriteService) publish(userID uint, event string, f *models.Favorite) {
	if s.publisher != nil {
		s.publisher.PublishFavorite(userID, event, f)
	}
}
