package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/visibility"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// EngagementHandler handles likes and replies on posts. Every route here is
// gated by the same visibility predicate as the post detail.
type EngagementHandler struct {
	likeRepository  repositories.LikeRepository
	replyRepository repositories.ReplyRepository
	postRepository  repositories.PostRepository
	authorizer      *visibility.Authorizer
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(
	likeRepo repositories.LikeRepository,
	replyRepo repositories.ReplyRepository,
	postRepo repositories.PostRepository,
	authorizer *visibility.Authorizer,
) *EngagementHandler {
	return &EngagementHandler{
		likeRepository:  likeRepo,
		replyRepository: replyRepo,
		postRepository:  postRepo,
		authorizer:      authorizer,
	}
}

// RegisterEngagementRoutes registers like and reply routes
func (h *EngagementHandler) RegisterEngagementRoutes(g *echo.Group) {
	g.GET("/posts/:id/likes", h.GetLikers)
	g.POST("/posts/:id/likes", h.LikePost)
	g.DELETE("/posts/:id/likes", h.UnlikePost)
	g.GET("/posts/:id/replies", h.GetReplies)
	g.POST("/posts/:id/replies", h.ReplyToPost)
}

// GetLikers returns the usernames that liked a post
func (h *EngagementHandler) GetLikers(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	post, err := loadVisiblePost(c, identity.UserID, h.postRepository, h.authorizer)
	if err != nil {
		return err
	}

	likers, err := h.likeRepository.GetLikers(post.ID)
	if err != nil {
		c.Logger().Errorf("likers fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"likes": likers})
}

// LikePost records that the caller liked a post
func (h *EngagementHandler) LikePost(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	post, err := loadVisiblePost(c, identity.UserID, h.postRepository, h.authorizer)
	if err != nil {
		return err
	}

	hasLiked, err := h.likeRepository.HasUserLikedPost(post.ID, identity.UserID)
	if err != nil {
		c.Logger().Errorf("like lookup failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "post already liked")
	}

	like := &models.Like{
		PostID: post.ID,
		UserID: identity.UserID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		// The unique (post_id, user_id) index resolves a concurrent double-like.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "post already liked")
		}
		c.Logger().Errorf("like creation failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, like)
}

// UnlikePost removes the caller's like from a post
func (h *EngagementHandler) UnlikePost(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	post, err := loadVisiblePost(c, identity.UserID, h.postRepository, h.authorizer)
	if err != nil {
		return err
	}

	if err := h.likeRepository.DeleteLike(post.ID, identity.UserID); err != nil {
		if errors.Is(err, repositories.ErrLikeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "like not found")
		}
		c.Logger().Errorf("like deletion failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetReplies returns (author name, body) rows for a post, oldest first
func (h *EngagementHandler) GetReplies(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	post, err := loadVisiblePost(c, identity.UserID, h.postRepository, h.authorizer)
	if err != nil {
		return err
	}

	replies, err := h.replyRepository.GetRepliesByPostID(post.ID)
	if err != nil {
		c.Logger().Errorf("replies fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"replies": replies})
}

// ReplyToPost creates a reply under a post the caller can view
func (h *EngagementHandler) ReplyToPost(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	post, err := loadVisiblePost(c, identity.UserID, h.postRepository, h.authorizer)
	if err != nil {
		return err
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string][]string{"errors": {"Body is required"}})
	}
	if utf8.RuneCountInString(body) > maxPostLength {
		return echo.NewHTTPError(http.StatusBadRequest, map[string][]string{"errors": {"Body must be 280 characters or less"}})
	}

	reply := &models.Reply{
		PostID: post.ID,
		UserID: identity.UserID,
		Body:   body,
	}
	if err := h.replyRepository.CreateReply(reply); err != nil {
		c.Logger().Errorf("reply creation failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, reply)
}
