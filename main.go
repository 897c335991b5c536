package main

import (
	"flag"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/moda-viva/storefront-api/database"
	"github.com/moda-viva/storefront-api/logger"
	"github.com/moda-viva/storefront-api/routes"
)

func main() {
	seed := flag.Bool("seed", false, "seed the database with demo catalog data and exit")
	flag.Parse()

	// Missing .env is fine in production, config comes from the environment.
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	logger.Init(env)
	defer logger.Log.Sync()

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect()
	if err != nil {
		logger.Log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}

	if *seed {
		if err := database.Seed(db); err != nil {
			logger.Log.Fatal("seeding failed", zap.Error(err))
		}
		logger.Log.Info("database seeded")
		return
	}

	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.MaxMultipartMemory = 32 << 20

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	routes.SetupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Info("listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
