package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/wichtel-api-go/pkg/handlers"
)

// Version is reported by the root route
const Version = "1.0.0"

// New builds the gin engine with every route
func New(h *handlers.Handler) *gin.Engine {
	r := gin.New()
	// Person names in /api/draws/:id/:person may contain an escaped '/'
	r.UseRawPath = true
	r.Use(gin.Logger(), gin.Recovery())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Wichtel API",
			"version": Version,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Draw Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/draw", h.Draw)
		api.GET("/draws/:id", h.GetDraw)
		api.GET("/draws/:id/:person", h.GetRecipient)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	// Same input document as the command line tool
	r.POST("/wichtel/json", h.APIKeyMiddleware(), h.Draw)

	return r
}
