package handlers

import (
	"errors"
	"net/http"
	"strings"

	"chirp/internal/auth"
	"chirp/internal/metrics"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repositories"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *auth.TokenManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterPublicRoutes registers the unauthenticated auth routes
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group, loginMiddleware ...echo.MiddlewareFunc) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login, loginMiddleware...)
}

// RegisterProtectedRoutes registers the token-gated auth routes
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
}

// Register handles new account creation
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check first for a friendly message; the unique index is the guarantee.
	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		c.Logger().Errorf("password hashing failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	user := &models.User{
		Username: req.Username,
		Name:     req.Name,
		Password: string(hashedPassword),
		Gender:   strings.ToLower(req.Gender),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		c.Logger().Errorf("user creation failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "user created successfully"})
}

// Login verifies credentials and issues a bearer token
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		metrics.IncLogin("bad_request")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.IncLogin("bad_request")
		return err
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		metrics.IncLogin("invalid_credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.IncLogin("invalid_credentials")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid credentials")
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		metrics.IncLogin("internal_error")
		c.Logger().Errorf("token issue failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	metrics.IncLogin("success")
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// GetProfile returns the caller's own user record
func (h *AuthHandler) GetProfile(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
	}

	user, err := h.userRepository.GetUserByID(identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		c.Logger().Errorf("profile fetch failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	return c.JSON(http.StatusOK, user)
}
