package main

import (
	"log"
	"os"

	"github.com/etlasneha/greenzone/config"
	"github.com/etlasneha/greenzone/routes"
	"github.com/etlasneha/greenzone/scheduler"
	"github.com/etlasneha/greenzone/services"
	"github.com/etlasneha/greenzone/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize database
	db := config.InitDB()

	// Blob store for report and proof images
	blobs := storage.FromEnv()

	// Best-effort notification dispatcher
	dispatcher := services.NewDispatcher(db)
	dispatcher.Start()
	defer dispatcher.Close()

	// Daily notification expiry
	cleanup := scheduler.Start(db)
	defer cleanup.Stop()

	// Create a new Gin router
	r := gin.Default()

	// Add logging middleware
	r.Use(gin.LoggerWithWriter(os.Stdout))

	// Initialize routes
	routes.SetupRoutes(r, db, blobs, dispatcher)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
