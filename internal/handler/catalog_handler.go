package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "holocron/internal/errors"
	"holocron/internal/models"
	"holocron/internal/repository"
)

// CatalogHandler serves the read-only characters, planets and vehicles tables.
type CatalogHandler struct {
	planets           *repository.CatalogRepository[models.Planet]
	characters        *repository.CatalogRepository[models.Character]
	vehicles          *repository.CatalogRepository[models.Vehicle]
	emptyListNotFound bool
}

func NewCatalogHandler(
	planets *repository.CatalogRepository[models.Planet],
	characters *repository.CatalogRepository[models.Character],
	vehicles *repository.CatalogRepository[models.Vehicle],
	emptyListNotFound bool,
) *CatalogHandler {
	return &CatalogHandler{
		planets:           planets,
		characters:        characters,
		vehicles:          vehicles,
		emptyListNotFound: emptyListNotFound,
	}
}

func (h *CatalogHandler) ListPlanets(c *gin.Context) {
	listEntities(c, h.planets.List, h.emptyListNotFound)
}

func (h *CatalogHandler) GetPlanet(c *gin.Context) {
	getEntity(c, h.planets.GetByID, "Planet not found")
}

func (h *CatalogHandler) ListCharacters(c *gin.Context) {
	listEntities(c, h.characters.List, h.emptyListNotFound)
}

func (h *CatalogHandler) GetCharacter(c *gin.Context) {
	getEntity(c, h.characters.GetByID, "Character not found")
}

func (h *CatalogHandler) ListVehicles(c *gin.Context) {
	listEntities(c, h.vehicles.List, h.emptyListNotFound)
}

func (h *CatalogHandler) GetVehicle(c *gin.Context) {
	getEntity(c, h.vehicles.GetByID, "Vehicle not found")
}

func listEntities[T any](c *gin.Context, list func(context.Context) ([]T, error), emptyNotFound bool) {
	rows, err := list(c.Request.Context())
	if err != nil {
		respondError(c, apperrors.FromDB(err, ""))
		return
	}
	if len(rows) == 0 {
		if emptyNotFound {
			notFoundList(c)
			return
		}
		rows = []T{}
	}
	c.JSON(http.StatusOK, rows)
}

func getEntity[T any](c *gin.Context, get func(context.Context, uint) (*T, error), notFoundMsg string) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}
	row, err := get(c.Request.Context(), id)
	if err != nil {
		respondError(c, apperrors.FromDB(err, notFoundMsg))
		return
	}
	c.JSON(http.StatusOK, row)
}
