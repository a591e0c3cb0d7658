package stubapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-plates/portal/internal/middleware"
)

// Router builds the stub's gin engine with the /api routes mounted.
func Router(store *Store, logger *zap.Logger, corsOrigins string) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(store, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/events", handler.ListEvents)
		api.POST("/events", handler.CreateEvent)
		api.GET("/events/:id", handler.GetEvent)
		api.PUT("/events/:id", handler.UpdateEvent)
		api.DELETE("/events/:id", handler.DeleteEvent)
		api.GET("/organizations", handler.ListOrganizations)
		api.GET("/locations", handler.ListLocations)
	}
	return router
}
