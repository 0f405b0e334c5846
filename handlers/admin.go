package handlers

import (
	"food-catalog-api/middleware"
	"food-catalog-api/pkg/resp"
	"food-catalog-api/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office routes; all of them sit behind AdminRequired
type AdminHandler struct {
	auth    *services.AuthService
	catalog *services.CatalogService
}

func NewAdminHandler(auth *services.AuthService, catalog *services.CatalogService) *AdminHandler {
	return &AdminHandler{auth: auth, catalog: catalog}
}

// GetAllUsers returns all users without password hashes
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, users)
}

// MakeAdmin promotes another user to admin
func (h *AdminHandler) MakeAdmin(c *gin.Context) {
	acting, _ := middleware.CurrentUser(c)
	user, err := h.auth.PromoteToAdmin(c.Request.Context(), acting, c.Param("id"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": user.Name + " is now an admin"})
}

// GetAllRestaurants returns the whole catalog, unpaginated
func (h *AdminHandler) GetAllRestaurants(c *gin.Context) {
	rs, err := h.catalog.ListAll(c.Request.Context())
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rs)
}
