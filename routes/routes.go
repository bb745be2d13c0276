package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/avolkov18/event-management-backend/config"
	"github.com/avolkov18/event-management-backend/database"
	"github.com/avolkov18/event-management-backend/internal/auditlog"
	"github.com/avolkov18/event-management-backend/internal/auth"
	"github.com/avolkov18/event-management-backend/internal/event"
	"github.com/avolkov18/event-management-backend/internal/participant"
	"github.com/avolkov18/event-management-backend/internal/reports"
	"github.com/avolkov18/event-management-backend/middleware"
)

// Setup wires repositories, services and handlers onto the router.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.AuditMiddleware()) // client IP + request id for audit entries

	// ========== Audit Log Module ==========
	auditRepo := auditlog.NewRepository(database.DB)
	auditSvc := auditlog.NewService(auditRepo)
	auditHandler := auditlog.NewHandler(auditSvc)

	// ========== Auth ==========
	authRepo := auth.NewRepository(database.DB)
	authSvc := auth.NewService(authRepo, cfg)
	authHandler := auth.NewHandler(authSvc)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)

		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)

		// Logout requires Auth Middleware
		authGroup.POST("/logout", middleware.AuthMiddleware(cfg, authSvc), authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))

	// ========== Events ==========
	eventRepo := event.NewRepository(database.DB)
	eventSvc := event.NewService(eventRepo, auditSvc, cfg)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Participants ==========
	participantRepo := participant.NewRepository(database.DB)
	participantSvc := participant.NewService(participantRepo, eventRepo, auditSvc)
	participantHandler := participant.NewHandler(participantSvc)

	// ========== Reports ==========
	reportsExporter := reports.NewExporter()
	reportsSvc := reports.NewService(eventRepo, participantSvc, reportsExporter)
	reportsHandler := reports.NewHandler(reportsSvc)

	eventRoutes := protected.Group("/events")
	{
		eventRoutes.POST("", eventHandler.CreateEvent)
		eventRoutes.GET("", eventHandler.ListEvents)
		eventRoutes.GET("/stats", eventHandler.GetStats)
		eventRoutes.GET("/export", reportsHandler.ExportOwnEvents)

		eventRoutes.GET("/:id", eventHandler.GetEventByID)
		eventRoutes.PUT("/:id", eventHandler.UpdateEvent)
		eventRoutes.DELETE("/:id", eventHandler.DeleteEvent)

		eventRoutes.POST("/:id/join", participantHandler.JoinEvent)
		eventRoutes.POST("/:id/leave", participantHandler.LeaveEvent)
		eventRoutes.GET("/:id/participants", participantHandler.ListParticipants)
		eventRoutes.GET("/:id/participants/export", reportsHandler.ExportParticipants)
	}

	// ========== Audit Logs ==========
	auditRoutes := protected.Group("/auditlogs")
	{
		auditRoutes.GET("", auditHandler.GetAuditLogs)
		auditRoutes.GET("/:id", auditHandler.GetAuditLogByID)
	}
}
