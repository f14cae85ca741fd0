package routes

import (
	"github.com/WorkhubHQ/workhub-backend/internal/config"
	"github.com/WorkhubHQ/workhub-backend/internal/handlers"
	"github.com/WorkhubHQ/workhub-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandlerDependencies holds the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler   *handlers.AuthHandler
	PointsHandler *handlers.PointsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.MetricsMiddleware())

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Points routes
		points := protected.Group("/points")
		{
			points.GET("/my/summary", deps.PointsHandler.GetMySummary)
			points.GET("/my/history", deps.PointsHandler.GetMyHistory)
			points.GET("/leaderboard", deps.PointsHandler.GetLeaderboard)
			points.POST("/activities", deps.PointsHandler.RecordActivity)

			// Admin routes
			admin := points.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/all", deps.PointsHandler.GetAllPoints)
				admin.GET("/summary", deps.PointsHandler.GetSystemSummary)
				admin.GET("/employees/:employeeId", deps.PointsHandler.GetEmployeePoints)
				admin.POST("/penalty", deps.PointsHandler.ApplyPenalty)
			}
		}
	}

	return router
}
