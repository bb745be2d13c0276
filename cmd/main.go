package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/avolkov18/event-management-backend/config"
	"github.com/avolkov18/event-management-backend/database"
	"github.com/avolkov18/event-management-backend/internal/auditlog"
	"github.com/avolkov18/event-management-backend/internal/auth"
	"github.com/avolkov18/event-management-backend/internal/event"
	"github.com/avolkov18/event-management-backend/internal/participant"
	"github.com/avolkov18/event-management-backend/routes"
	"github.com/avolkov18/event-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis (password reset tokens)
	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("Redis init failed: %v", err)
	}

	// Auto-migrate models
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&participant.Participant{},
		&auditlog.AuditLog{},
	); err != nil {
		log.Fatalf("DB AutoMigrate failed: %v", err)
	}
	log.Println("Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
