package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelpost/pixelpost/app/auth"
	"github.com/pixelpost/pixelpost/app/bookmarks"
	"github.com/pixelpost/pixelpost/app/database"
	"github.com/pixelpost/pixelpost/app/feed"
	"github.com/pixelpost/pixelpost/app/headlines"
	"github.com/pixelpost/pixelpost/app/profile"
	"github.com/pixelpost/pixelpost/app/tasks"
)

func NewHandler(authService *auth.Service, userRepo database.UserRepository,
	blogRepo database.BlogRepository, bookmarkStore *bookmarks.Store,
	profileStore *profile.Store, sessionManager *feed.Manager,
	topics headlines.Topics, scheduler tasks.TaskSchedulerInterface,
	httpClient *http.Client, userAgent string) *Handler {
	return &Handler{
		authService:      authService,
		userRepo:         userRepo,
		blogRepo:         blogRepo,
		bookmarkStore:    bookmarkStore,
		profileStore:     profileStore,
		sessionManager:   sessionManager,
		topics:           topics,
		scheduler:        scheduler,
		httpClient:       httpClient,
		contentExtractor: headlines.NewContentExtractor(),
		userAgent:        userAgent,
	}
}

func toUserResponse(user *database.User) userResponse {
	return userResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

// rememberProfile persists the signed-in identity, matching the original
// behavior of storing the user alongside the bookmarks.
func (h *Handler) rememberProfile(user *database.User) {
	if err := h.profileStore.Set(profile.Profile{Name: user.Name, Email: user.Email}); err != nil {
		slog.Warn("Failed to persist signed-in profile", "email", user.Email, "error", err)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required"})
		return
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		slog.Error("Registration failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	h.rememberProfile(user)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    toUserResponse(user),
		"token":   token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not registered"})
			return
		}
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email and password do not match"})
			return
		}
		slog.Error("Login failed", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	h.rememberProfile(user)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    toUserResponse(user),
		"token":   token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user := c.MustGet("user").(*database.User)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) ListBlogs(c *gin.Context) {
	blogs, err := h.blogRepo.GetBlogs()
	if err != nil {
		slog.Error("Database error", "operation", "get_blogs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]gin.H, 0, len(blogs))
	for _, blog := range blogs {
		out = append(out, gin.H{
			"id":         blog.ID,
			"title":      blog.Title,
			"author":     blog.Author,
			"content":    blog.Content,
			"created_at": blog.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    out,
		"total":   len(out),
	})
}

func (h *Handler) CreateBlog(c *gin.Context) {
	var req blogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, author and content are required"})
		return
	}

	blog, err := h.blogRepo.CreateBlog(req.Title, req.Author, req.Content)
	if err != nil {
		slog.Error("Database error", "operation", "create_blog", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":         blog.ID,
			"title":      blog.Title,
			"author":     blog.Author,
			"content":    blog.Content,
			"created_at": blog.CreatedAt.Format(time.RFC3339),
		},
	})
}

func (h *Handler) ListTopics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": h.topics.Names()})
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	records := h.bookmarkStore.List()
	c.JSON(http.StatusOK, gin.H{
		"bookmarks": records,
		"total":     len(records),
	})
}

func (h *Handler) ToggleBookmark(c *gin.Context) {
	var article headlines.Article
	if err := c.ShouldBindJSON(&article); err != nil || article.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An article with a URL is required"})
		return
	}

	bookmarked, err := h.bookmarkStore.Toggle(article)
	if err != nil {
		slog.Error("Failed to persist bookmarks", "url", article.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist bookmarks"})
		return
	}

	if bookmarked {
		task := tasks.NewExtractContentTask(h.bookmarkStore, h.httpClient, h.contentExtractor, h.userAgent)
		if err := h.scheduler.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue extract task", "url", article.URL, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarked": bookmarked,
		"total":      h.bookmarkStore.Count(),
	})
}

// ExtractBookmarks enqueues an immediate content extraction run instead of
// waiting for the next scheduler tick.
func (h *Handler) ExtractBookmarks(c *gin.Context) {
	task := tasks.NewExtractContentTask(h.bookmarkStore, h.httpClient, h.contentExtractor, h.userAgent)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing extract task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue extract task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profileStore.Get())
}

func (h *Handler) SetProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	if err := h.profileStore.Set(p); err != nil {
		slog.Error("Failed to persist profile", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist profile"})
		return
	}

	c.JSON(http.StatusOK, h.profileStore.Get())
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if userCount, err := h.userRepo.GetUserCount(); err == nil {
		health["users"] = userCount
	}
	if blogCount, err := h.blogRepo.GetBlogCount(); err == nil {
		health["blogs"] = blogCount
	}

	health["bookmarks"] = h.bookmarkStore.Count()
	health["sessions"] = h.sessionManager.Count()

	c.JSON(http.StatusOK, health)
}
