package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"holocron/internal/database"
	"holocron/internal/logger"
)

type SystemHandler struct {
	db     *gorm.DB
	engine *gin.Engine
}

func NewSystemHandler(db *gorm.DB, engine *gin.Engine) *SystemHandler {
	return &SystemHandler{db: db, engine: engine}
}

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Sitemap lists the registered routes sorted by path, then method.
func (h *SystemHandler) Sitemap(c *gin.Context) {
	routes := h.engine.Routes()
	out := make([]endpoint, 0, len(routes))
	for _, r := range routes {
		out = append(out, endpoint{Method: r.Method, Path: r.Path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	c.JSON(http.StatusOK, gin.H{"endpoints": out})
}

func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := database.Ping(ctx, h.db); err != nil {
		logger.WithComponent("http").Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
