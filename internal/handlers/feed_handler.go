package handlers

import (
	"net/http"
	"strconv"

	"chirp/internal/middleware"
	"chirp/internal/repositories"

	"github.com/labstack/echo/v4"
)

// FeedHandler assembles the caller's chronological timeline from followed
// authors.
type FeedHandler struct {
	postRepository repositories.PostRepository
	pageSize       int
}

// NewFeedHandler creates a new FeedHandler with the configured page size
func NewFeedHandler(postRepo repositories.PostRepository, pageSize int) *FeedHandler {
	if pageSize < 1 {
		pageSize = 20
	}
	return &FeedHandler{
		postRepository: postRepo,
		pageSize:       pageSize,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the most recent posts from followed accounts. The window
// defaults to the configured page size; a smaller limit may be requested.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	limit := h.pageSize
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		if parsed < limit {
			limit = parsed
		}
	}

	feed, err := h.postRepository.GetFeed(identity.UserID, limit)
	if err != nil {
		c.Logger().Errorf("feed fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, feed)
}
