package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"holocron/internal/domain"
	apperrors "holocron/internal/errors"
	"holocron/internal/service"
)

type FavoriteHandler struct {
	svc *service.FavoriteService
}

func NewFavoriteHandler(svc *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// favoriteParams reads /favorite/:kind/:user_id/:target_id.
func favoriteParams(c *gin.Context) (uint, domain.Target, error) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		return 0, domain.Target{}, apperrors.NewValidationError("Unknown favorite kind", c.Param("kind"))
	}
	userID, err := pathID(c, "user_id")
	if err != nil {
		return 0, domain.Target{}, err
	}
	targetID, err := pathID(c, "target_id")
	if err != nil {
		return 0, domain.Target{}, err
	}
	return userID, domain.Target{Kind: kind, ID: targetID}, nil
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, target, err := favoriteParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	fav, created, err := h.svc.Add(c.Request.Context(), userID, target)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"msg": target.Kind.Label() + " already in favorites", "favorite": fav})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": target.Kind.Label() + " added to favorites", "favorite": fav})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, target, err := favoriteParams(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.Remove(c.Request.Context(), userID, target); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": target.Kind.Label() + " removed from favorites"})
}

// List answers the user's raw favorite rows; an empty list is 200 [].
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, err := pathID(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
