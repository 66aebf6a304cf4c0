package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "holocron/internal/errors"
	"holocron/internal/models"
	"holocron/internal/repository"
	"holocron/internal/service"
)

type UserHandler struct {
	repo              *repository.UserRepository
	svc               *service.UserService
	emptyListNotFound bool
}

func NewUserHandler(repo *repository.UserRepository, svc *service.UserService, emptyListNotFound bool) *UserHandler {
	return &UserHandler{repo: repo, svc: svc, emptyListNotFound: emptyListNotFound}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, apperrors.FromDB(err, ""))
		return
	}
	if len(users) == 0 {
		if h.emptyListNotFound {
			notFoundList(c)
			return
		}
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	u, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, apperrors.FromDB(err, fmt.Sprintf("user %d not found", id)))
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	u, err := h.svc.Create(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "User created succesfully", "user": u})
}
