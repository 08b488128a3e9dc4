package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelpost/pixelpost/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", handler.Register)
			authGroup.POST("/login", handler.Login)
			authGroup.GET("/me", handler.authMiddleware(), handler.GetMe)
		}

		api.GET("/blogs", handler.ListBlogs)
		api.POST("/blogs", handler.authMiddleware(), handler.CreateBlog)

		api.GET("/topics", handler.ListTopics)

		api.GET("/bookmarks", handler.ListBookmarks)
		api.POST("/bookmarks/toggle", handler.ToggleBookmark)
		api.POST("/bookmarks/extract", handler.ExtractBookmarks)

		api.GET("/profile", handler.GetProfile)
		api.PUT("/profile", handler.SetProfile)

		sessions := api.Group("/feed/sessions")
		{
			sessions.POST("", handler.OpenSession)
			sessions.GET("/:id", handler.GetSession)
			sessions.DELETE("/:id", handler.CloseSession)
			sessions.PUT("/:id/filters", handler.UpdateSessionFilters)
			sessions.POST("/:id/next", handler.RequestNextPage)
			sessions.POST("/:id/sentinel", handler.ReportSentinel)
		}
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "PixelPost",
			"version":     cfg.GetVersion(),
			"description": "News reading backend with incremental headline pagination, bookmarks, and blogs",
			"endpoints": map[string]string{
				"health":    "/health",
				"register":  "/api/auth/register (POST)",
				"login":     "/api/auth/login (POST)",
				"blogs":     "/api/blogs",
				"topics":    "/api/topics",
				"bookmarks": "/api/bookmarks",
				"profile":   "/api/profile",
				"sessions":  "/api/feed/sessions",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware verifies the Bearer token and resolves the signed-in user.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		email, err := h.authService.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := h.userRepo.GetUserByEmail(email)
		if err != nil || user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
