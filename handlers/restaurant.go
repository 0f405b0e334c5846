package handlers

import (
	"net/http"

	"food-catalog-api/models"
	"food-catalog-api/pkg/resp"
	"food-catalog-api/services"

	"github.com/gin-gonic/gin"
)

// ── Catalog writes ──────────────────────────────────────────────────────────

type RestaurantHandler struct {
	catalog *services.CatalogService
}

func NewRestaurantHandler(catalog *services.CatalogService) *RestaurantHandler {
	return &RestaurantHandler{catalog: catalog}
}

// AddRestaurants inserts a batch of restaurants; nothing is stored if any record is invalid
func (h *RestaurantHandler) AddRestaurants(c *gin.Context) {
	var req []models.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, errInvalidBody)
		return
	}
	rs, err := h.catalog.BulkAdd(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"message": "Products added successfully", "products": rs})
}

// CreateRestaurant inserts a single restaurant (admin only)
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req models.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, errInvalidBody)
		return
	}
	r, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, r)
}

// UpdateRestaurant merges the supplied fields into an existing restaurant
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	var req models.RestaurantPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, errInvalidBody)
		return
	}
	r, err := h.catalog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, r)
}

// DeleteRestaurant removes a restaurant and its food items
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Message(c, http.StatusOK, "Product deleted")
}
