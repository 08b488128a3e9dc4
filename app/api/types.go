package api

import (
	"net/http"

	"github.com/pixelpost/pixelpost/app/auth"
	"github.com/pixelpost/pixelpost/app/bookmarks"
	"github.com/pixelpost/pixelpost/app/database"
	"github.com/pixelpost/pixelpost/app/feed"
	"github.com/pixelpost/pixelpost/app/headlines"
	"github.com/pixelpost/pixelpost/app/profile"
	"github.com/pixelpost/pixelpost/app/tasks"
)

type Handler struct {
	authService      *auth.Service
	userRepo         database.UserRepository
	blogRepo         database.BlogRepository
	bookmarkStore    *bookmarks.Store
	profileStore     *profile.Store
	sessionManager   *feed.Manager
	topics           headlines.Topics
	scheduler        tasks.TaskSchedulerInterface
	httpClient       *http.Client
	contentExtractor *headlines.ContentExtractor
	userAgent        string
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type blogRequest struct {
	Title   string `json:"title" binding:"required"`
	Author  string `json:"author" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type openSessionRequest struct {
	Sort string `json:"sort"`
}

type filtersRequest struct {
	Search        string `json:"search"`
	PublishedDate string `json:"published_date"`
	Category      string `json:"category"`
}

type sentinelRequest struct {
	Ratio *float64 `json:"ratio" binding:"required"`
}
