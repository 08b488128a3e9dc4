package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelpost/pixelpost/app/feed"
	"github.com/pixelpost/pixelpost/app/headlines"
)

func sessionSnapshot(session *feed.Session) gin.H {
	state, visible := session.Snapshot()
	if visible == nil {
		visible = []headlines.Article{}
	}

	return gin.H{
		"session_id": session.ID,
		"articles":   visible,
		"loaded":     len(state.Articles),
		"page":       state.Page,
		"has_more":   state.HasMore,
		"loading":    state.Loading,
		"error":      state.Err,
	}
}

// OpenSession mounts a new feed pipeline and triggers its initial load.
// sort=published_desc orders each page newest-first, as the profile view does.
func (h *Handler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session payload"})
			return
		}
	}

	sortByDate := false
	switch req.Sort {
	case "":
	case "published_desc":
		sortByDate = true
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sort order: " + req.Sort})
		return
	}

	session := h.sessionManager.Open(sortByDate)
	c.JSON(http.StatusCreated, gin.H{"session_id": session.ID})
}

func (h *Handler) GetSession(c *gin.Context) {
	session, ok := h.sessionManager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, sessionSnapshot(session))
}

func (h *Handler) CloseSession(c *gin.Context) {
	if !h.sessionManager.Close(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSessionFilters applies a new filter selection. Date and category
// changes take effect immediately; the search value commits after the
// debounce quiet period.
func (h *Handler) UpdateSessionFilters(c *gin.Context) {
	session, ok := h.sessionManager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req filtersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters payload"})
		return
	}

	if req.PublishedDate != "" {
		if _, err := time.Parse("2006-01-02", req.PublishedDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "published_date must be formatted as YYYY-MM-DD"})
			return
		}
	}

	if !h.topics.Valid(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + req.Category})
		return
	}

	session.UpdateFilters(req.Search, req.PublishedDate, req.Category)
	c.JSON(http.StatusOK, sessionSnapshot(session))
}

func (h *Handler) RequestNextPage(c *gin.Context) {
	session, ok := h.sessionManager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	session.RequestNextPage()
	c.JSON(http.StatusOK, sessionSnapshot(session))
}

// ReportSentinel feeds one sentinel visibility observation to the session's
// scroll trigger.
func (h *Handler) ReportSentinel(c *gin.Context) {
	session, ok := h.sessionManager.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	var req sentinelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A visibility ratio is required"})
		return
	}

	triggered := session.ReportSentinel(*req.Ratio)

	response := sessionSnapshot(session)
	response["triggered"] = triggered
	c.JSON(http.StatusOK, response)
}
