package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"chirp/internal/metrics"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/visibility"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const maxPostLength = 280

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	authorizer     *visibility.Authorizer
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, authorizer *visibility.Authorizer) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		authorizer:     authorizer,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetOwnPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	// Length limits apply to the trimmed body.
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string][]string{"errors": {"Body is required"}})
	}
	if utf8.RuneCountInString(body) > maxPostLength {
		return echo.NewHTTPError(http.StatusBadRequest, map[string][]string{"errors": {"Body must be 280 characters or less"}})
	}

	post := &models.Post{
		UserID: identity.UserID,
		Body:   body,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		c.Logger().Errorf("post creation failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	metrics.IncPostCreated()
	return c.JSON(http.StatusCreated, post)
}

// GetOwnPosts returns the caller's posts with like/reply counts. This is the
// profile timeline, so the visibility gate does not apply.
func (h *PostHandler) GetOwnPosts(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	posts, err := h.postRepository.GetPostsWithCounts(identity.UserID)
	if err != nil {
		c.Logger().Errorf("own posts fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post with its counts, gated by visibility
func (h *PostHandler) GetPost(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	post, err := loadVisiblePost(c, identity.UserID, h.postRepository, h.authorizer)
	if err != nil {
		return err
	}

	likeCount, replyCount, err := h.postRepository.GetPostCounts(post.ID)
	if err != nil {
		c.Logger().Errorf("post counts fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, models.PostWithCounts{
		ID:         post.ID,
		UserID:     post.UserID,
		Body:       post.Body,
		CreatedAt:  post.CreatedAt,
		LikeCount:  likeCount,
		ReplyCount: replyCount,
	})
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	postID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		c.Logger().Errorf("post fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	if post.UserID != identity.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "not authorized to delete this post")
	}

	deleted, err := h.postRepository.DeleteOwnedPost(postID, identity.UserID)
	if err != nil {
		c.Logger().Errorf("post deletion failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if !deleted {
		// A concurrent delete won the race.
		return echo.NewHTTPError(http.StatusNotFound, "post not found")
	}

	return c.NoContent(http.StatusNoContent)
}

