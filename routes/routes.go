package routes

import (
	"net/http"

	"food-catalog-api/handlers"
	"food-catalog-api/middleware"
	"food-catalog-api/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, auth *services.AuthService, catalog *services.CatalogService) {
	authH := handlers.NewAuthHandler(auth)
	restH := handlers.NewRestaurantHandler(catalog)
	adminH := handlers.NewAdminHandler(auth, catalog)

	protect := middleware.AuthRequired(auth)
	admin := middleware.AdminRequired(auth)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Food Catalog API"})
	})
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Food Catalog API", "health": "/health"})
	})

	// ── Products ───────────────────────────────────────────────────
	products := r.Group("/api/products")
	{
		products.POST("/add-products", restH.AddRestaurants)
		products.GET("", restH.ListRestaurants)
		products.GET("/:restaurant_id", restH.GetRestaurant)

		products.POST("/only-admin", protect, admin, restH.CreateRestaurant)
		products.PUT("/:id", protect, admin, restH.UpdateRestaurant)
		products.DELETE("/:id", protect, admin, restH.DeleteRestaurant)
		products.GET("/allProductsToAdmin", protect, admin, adminH.GetAllRestaurants)
	}

	// ── Users ──────────────────────────────────────────────────────
	users := r.Group("/api/users")
	{
		users.POST("/register", authH.Register)
		users.POST("/login", authH.Login)
		users.GET("/profile", protect, authH.GetProfile)

		users.GET("", protect, admin, adminH.GetAllUsers)
		users.PUT("/:id/make-admin", protect, admin, adminH.MakeAdmin)
	}
}
