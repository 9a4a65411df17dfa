package routes

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"mediguard-backend/config"
	"mediguard-backend/controllers"
	"mediguard-backend/database"
	"mediguard-backend/knowledge"
	"mediguard-backend/middleware"
	"mediguard-backend/services"
	"mediguard-backend/utils"
)

type Dependencies struct {
	Config    *config.Config
	Knowledge *knowledge.KnowledgeBase
	Store     database.SessionStore
	// Options are passed to every service; tests use them to pin the picker.
	Options []services.Option
}

// NewRouter builds the engine with the global middleware and all routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())
	router.Use(cors.New(corsConfig(deps.Config.Security.AllowedOrigins)))

	SetupRoutes(router, deps)
	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			middleware.DisclaimerHeader, middleware.RequestIDHeader,
		},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// Initialize services
	opts := append([]services.Option{
		services.WithPicker(utils.NewRandomPicker(cfg.Triage.RandomSeed)),
	}, deps.Options...)
	triageService := services.NewTriageService(deps.Knowledge, opts...)
	chatbotService := services.NewChatbotService(deps.Knowledge, deps.Store, opts...)
	toolsService := services.NewHealthToolsService(deps.Knowledge, deps.Store, opts...)

	// Initialize controllers
	triageController := controllers.NewTriageController(triageService)
	chatbotController := controllers.NewChatbotController(chatbotService)
	toolsController := controllers.NewToolsController(toolsService)
	wsController := controllers.NewWebSocketController(chatbotService, cfg.Security.AllowedOrigins)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		storeStatus := "ok"
		if err := deps.Store.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			storeStatus = err.Error()
		}
		c.JSON(status, gin.H{
			"status":    http.StatusText(status),
			"timestamp": time.Now(),
			"store":     deps.Store.Kind(),
			"store_ok":  storeStatus,
		})
	})

	// Reference material, readable without accepting the disclaimer
	public := router.Group("/api/v1")
	{
		public.GET("/symptoms", triageController.GetQuickSelectSymptoms)
		public.GET("/first-aid", triageController.ListFirstAid)
		public.GET("/first-aid/:topic", triageController.GetFirstAid)
		public.GET("/emergency/contacts", toolsController.GetEmergencyContacts)
		public.GET("/emergency/signs", toolsController.GetEmergencySigns)
	}

	protected := router.Group("/api/v1")
	if cfg.Security.RequireDisclaimer {
		protected.Use(middleware.RequireDisclaimer())
	}
	{
		protected.POST("/assess", triageController.Assess)
		protected.POST("/symptoms/extract", triageController.ExtractSymptoms)
		protected.GET("/remedies/:complaint", triageController.GetRemedy)

		protected.POST("/chat", chatbotController.HandleChat)
		protected.GET("/chat/history", chatbotController.GetChatHistory)
		protected.DELETE("/chat/history", chatbotController.ClearChatHistory)
		protected.GET("/chat/intents", chatbotController.GetSupportedIntents)

		// WebSocket for real-time chat
		protected.GET("/ws", wsController.HandleWebSocket)

		protected.POST("/tools/heart-rate", toolsController.CheckHeartRate)
		protected.POST("/tools/tracker", toolsController.TrackSymptom)
		protected.GET("/tools/tracker", toolsController.GetTrackedSymptoms)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}
