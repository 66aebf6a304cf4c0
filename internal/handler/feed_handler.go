package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "holocron/internal/errors"
	"holocron/internal/logger"
	"holocron/internal/repository"
	"holocron/internal/ws"
)

type FeedHandler struct {
	hub      *ws.Hub
	userRepo *repository.UserRepository
}

func NewFeedHandler(hub *ws.Hub, userRepo *repository.UserRepository) *FeedHandler {
	return &FeedHandler{hub: hub, userRepo: userRepo}
}

// Favorites upgrades to a websocket that streams the user's favorite events.
func (h *FeedHandler) Favorites(c *gin.Context) {
	userID, err := pathID(c, "user_id")
	if err != nil {
		respondError(c, err)
		return
	}
	ok, err := h.userRepo.Exists(c.Request.Context(), userID)
	if err != nil {
		respondError(c, apperrors.FromDB(err, ""))
		return
	}
	if !ok {
		respondError(c, apperrors.NewNotFoundError(fmt.Sprintf("User %d not found", userID)))
		return
	}

	log := logger.WithComponent("ws")
	log.Debug("favorite feed opened", "user_id", userID)
	if err := ws.Serve(h.hub, c.Writer, c.Request, userID); err != nil {
		log.Warn("websocket upgrade failed", "user_id", userID, "error", err)
		return
	}
	log.Debug("favorite feed closed", "user_id", userID, "remaining", h.hub.ClientCount(userID))
}
