package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"holocron/config"
	"holocron/internal/database"
	"holocron/internal/handler"
	"holocron/internal/middleware"
	"holocron/internal/repository"
	"holocron/internal/service"
	"holocron/internal/ws"
)

// Setup builds the gin engine with every route. limiter may be nil to disable rate limiting.
func Setup(cfg *config.Config, db *gorm.DB, limiter middleware.Limiter, hub *ws.Hub) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	if hub == nil {
		hub = ws.NewHub()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	if limiter != nil {
		r.Use(middleware.RateLimit(limiter))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	planetRepo := repository.NewPlanetRepository(db)
	characterRepo := repository.NewCharacterRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	favRepo := repository.NewFavoriteRepository(db)

	// Services
	userSvc := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	favSvc := service.NewFavoriteService(
		database.NewTxManager(db),
		favRepo, userRepo, planetRepo, characterRepo, vehicleRepo,
		hub,
	)

	// Handlers
	emptyNotFound := cfg.API.EmptyListNotFound
	userHandler := handler.NewUserHandler(userRepo, userSvc, emptyNotFound)
	catalogHandler := handler.NewCatalogHandler(planetRepo, characterRepo, vehicleRepo, emptyNotFound)
	favoriteHandler := handler.NewFavoriteHandler(favSvc)
	feedHandler := handler.NewFeedHandler(hub, userRepo)
	systemHandler := handler.NewSystemHandler(db, r)

	r.GET("/", systemHandler.Sitemap)
	r.GET("/health", systemHandler.Health)

	users := r.Group("/user")
	{
		users.GET("", userHandler.List)
		users.POST("", userHandler.Create)
		users.GET("/:user_id", userHandler.Get)
		users.GET("/:user_id/favorites", favoriteHandler.List)
	}

	r.GET("/characters", catalogHandler.ListCharacters)
	r.GET("/characters/:id", catalogHandler.GetCharacter)
	r.GET("/planets", catalogHandler.ListPlanets)
	r.GET("/planets/:id", catalogHandler.GetPlanet)
	r.GET("/vehicles", catalogHandler.ListVehicles)
	r.GET("/vehicles/:id", catalogHandler.GetVehicle)

	r.POST("/favorite/:kind/:user_id/:target_id", favoriteHandler.Add)
	r.DELETE("/favorite/:kind/:user_id/:target_id", favoriteHandler.Remove)

	r.GET("/ws/user/:user_id/favorites", feedHandler.Favorites)

	return r
}

// Handler wraps the engine with CORS.
func Handler(cfg *config.Config, engine *gin.Engine) http.Handler {
	return middleware.NewCORS(&cfg.CORS).Middleware(engine)
}
