package handlers

import (
	"errors"
	"net/http"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repositories"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow graph reads and mutations
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/following", h.GetFollowing)
	g.GET("/followers", h.GetFollowers)
}

// FollowUser creates a follow edge from the caller to the target user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	targetID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	if identity.UserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot follow yourself")
	}

	if _, err := h.userRepository.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		c.Logger().Errorf("user lookup failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	isFollowing, err := h.followRepository.IsFollowing(identity.UserID, targetID)
	if err != nil {
		c.Logger().Errorf("follow lookup failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "already following this user")
	}

	follow := &models.Follow{
		FollowerID:  identity.UserID,
		FollowingID: targetID,
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		// The unique pair index resolves a concurrent double-follow.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusConflict, "already following this user")
		}
		c.Logger().Errorf("follow creation failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser removes the caller's follow edge to the target user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	targetID, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(identity.UserID, targetID); err != nil {
		if errors.Is(err, repositories.ErrFollowNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "not following this user")
		}
		c.Logger().Errorf("follow deletion failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// followListEntry is one row of the following/followers listings.
type followListEntry struct {
	Name string `json:"name"`
}

// GetFollowing returns the names of users the caller follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	users, err := h.followRepository.GetFollowing(identity.UserID)
	if err != nil {
		c.Logger().Errorf("following fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, toFollowList(users))
}

// GetFollowers returns the names of users following the caller
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	users, err := h.followRepository.GetFollowers(identity.UserID)
	if err != nil {
		c.Logger().Errorf("followers fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, toFollowList(users))
}

func toFollowList(users []models.User) []followListEntry {
	entries := make([]followListEntry, len(users))
	for i, u := range users {
		entries[i] = followListEntry{Name: u.Name}
	}
	return entries
}
