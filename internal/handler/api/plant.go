package api

import (
	"net/http"

	"github.com/dukerupert/verdant/internal/handler"
	"github.com/dukerupert/verdant/internal/service"
)

// PlantHandler serves catalog lookups.
type PlantHandler struct {
	catalog service.CatalogService
}

func NewPlantHandler(catalog service.CatalogService) *PlantHandler {
	return &PlantHandler{catalog: catalog}
}

// Get handles GET /plant/{id}
func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "api.plant.get")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	plant, err := h.catalog.GetPlant(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.OK(w, "", handler.Envelope{"data": plant})
}
