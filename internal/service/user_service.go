package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "holocron/internal/errors"
	"holocron/internal/models"
	"holocron/internal/repository"
)

type UserService struct {
	userRepo   *repository.UserRepository
	bcryptCost int
}

func NewUserService(userRepo *repository.UserRepository, bcryptCost int) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{userRepo: userRepo, bcryptCost: bcryptCost}
}

// Create registers an active user with a bcrypt-hashed password.
func (s *UserService) Create(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.NewConflictError("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewInternalError("Server error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewValidationError("password cannot be hashed", err.Error())
	}
	u := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("email already registered")
		}
		return nil, apperrors.NewInternalError("Server error", err)
	}
	return u, nil
}
