package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"food-catalog-api/config"
	"food-catalog-api/middleware"
	"food-catalog-api/routes"
	"food-catalog-api/services"
	"food-catalog-api/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "food-catalog-api",
		Short:        "Restaurant catalog and user accounts over HTTP",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newCreateAdminCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote the account that owns the email",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			users, _, closeStores, err := openStores(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStores()

			auth := services.NewAuthService(users, cfg.JWTSecret, services.WithBcryptCost(cfg.BcryptCost))
			admin, err := auth.EnsureAdmin(ctx, name, email, password)
			if err != nil {
				return err
			}
			log.Printf("✅ %s (%s) is an admin", admin.Name, admin.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Admin", "display name for a new account")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "password for a new account")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	users, restaurants, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	auth := services.NewAuthService(users, cfg.JWTSecret,
		services.WithTokenTTL(cfg.TokenTTL),
		services.WithBcryptCost(cfg.BcryptCost),
	)
	catalog := services.NewCatalogService(restaurants)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))
	routes.SetupRoutes(r, auth, catalog)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	return r.Run(":" + cfg.Port)
}

// openStores picks the backend named by STORE_DRIVER
func openStores(ctx context.Context, cfg *config.Config) (store.UserStore, store.RestaurantStore, func(), error) {
	if cfg.StoreDriver == "mongo" {
		client, err := config.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Error disconnecting from MongoDB: %v", err)
			}
		}
		db := client.Database(cfg.MongoDatabase)
		users := store.NewMongoUserStore(db)
		restaurants := store.NewMongoRestaurantStore(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, nil, fmt.Errorf("user indexes: %w", err)
		}
		if err := restaurants.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, nil, fmt.Errorf("product indexes: %w", err)
		}
		return users, restaurants, closeFn, nil
	}

	db, err := config.OpenDatabase(cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return store.NewGormUserStore(db), store.NewGormRestaurantStore(db), closeFn, nil
}
