package handlers

import (
	"strconv"

	"food-catalog-api/apperr"
	"food-catalog-api/models"
	"food-catalog-api/pkg/resp"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns one page of restaurants sorted by rating (public)
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	q := models.PageQuery{Sort: c.Query("sort")}

	var errs []apperr.FieldError
	var err error
	if q.Page, err = intQuery(c, "page"); err != nil {
		errs = append(errs, apperr.FieldError{Field: "page", Message: "page must be a number"})
	}
	if q.Limit, err = intQuery(c, "limit"); err != nil {
		errs = append(errs, apperr.FieldError{Field: "limit", Message: "limit must be a number"})
	}
	if len(errs) > 0 {
		resp.Error(c, apperr.Validation(errs))
		return
	}

	page, err := h.catalog.ListPage(c.Request.Context(), q)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, page)
}

// GetRestaurant returns a single restaurant with its food items
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	r, err := h.catalog.GetByID(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{
		"success":    true,
		"restaurant": r,
		"food_items": r.FoodItems,
	})
}

// intQuery returns 0 when the parameter is absent so the service applies its default
func intQuery(c *gin.Context, key string) (int, error) {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
