package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"chirp/internal/metrics"
	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/visibility"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// loadVisiblePost fetches a post by the :id param and applies the visibility
// gate: 404 when the post does not exist, 401 when the caller is neither the
// author nor a follower. Post detail, likes and replies all go through here
// so the check cannot diverge between them.
func loadVisiblePost(c echo.Context, callerID uint, postRepo repositories.PostRepository, authorizer *visibility.Authorizer) (*models.Post, error) {
	postID, err := parseID(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid post ID")
	}

	post, err := postRepo.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		c.Logger().Errorf("post fetch failed: %v", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	canView, err := authorizer.CanView(callerID, post)
	if err != nil {
		c.Logger().Errorf("visibility check failed: %v", err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	if !canView {
		metrics.IncVisibilityDenial()
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid request")
	}

	return post, nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
