package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blogcraft/blog-backend/internal/auth"
	"github.com/blogcraft/blog-backend/internal/middleware"
	"github.com/blogcraft/blog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	// loginTimeout is the maximum duration for database operations during login.
	loginTimeout = 5 * time.Second
)

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser represents user information in the login response.
type LoginUser struct {
	Username string `json:"username"`
}

// LoginResponse represents a successful login response.
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	users     store.UserStore
	jwtSecret string
	// dummyPasswordHash is used to prevent timing attacks.
	// When a user doesn't exist, we compare against this hash to ensure
	// consistent execution time with real authentication.
	dummyPasswordHash string
}

// AuthHandlerOption is a function that configures an AuthHandler.
type AuthHandlerOption func(*authHandlerConfig)

// authHandlerConfig holds configuration for creating an AuthHandler.
type authHandlerConfig struct {
	bcryptCost int
}

// WithBcryptCost sets a custom bcrypt cost for the AuthHandler.
// This is primarily used for testing to speed up tests by using bcrypt.MinCost.
func WithBcryptCost(cost int) AuthHandlerOption {
	return func(cfg *authHandlerConfig) {
		cfg.bcryptCost = cost
	}
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(users store.UserStore, jwtSecret string, opts ...AuthHandlerOption) (*AuthHandler, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}

	cfg := &authHandlerConfig{
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// Pre-compute dummy hash for timing-attack prevention
	hash, err := bcrypt.GenerateFromPassword(
		[]byte("constant-dummy-password-for-timing-safety"),
		cfg.bcryptCost,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dummy password hash: %w", err)
	}

	return &AuthHandler{
		users:             users,
		jwtSecret:         jwtSecret,
		dummyPasswordHash: string(hash),
	}, nil
}

// RegisterRoutes registers authentication routes to the router.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", middleware.AuthRequired(h.jwtSecret), h.Logout)
	}
}

// Login handles user authentication.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request format",
		})
		return
	}

	var userExists bool
	var passwordHash string

	// Bound the lookup so a stuck database cannot hold the request open.
	ctx, cancel := context.WithTimeout(c.Request.Context(), loginTimeout)
	defer cancel()

	user, err := h.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			userExists = false
			passwordHash = h.dummyPasswordHash
		} else {
			middleware.Logger(c).Error("login lookup failed", "error", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    http.StatusInternalServerError,
				Message: "Internal server error",
			})
			return
		}
	} else {
		userExists = true
		passwordHash = user.Password
	}

	// Timing attack prevention: Always perform bcrypt comparison regardless of user existence.
	// This ensures consistent response time whether user exists or not.
	passwordErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password))

	if !userExists || passwordErr != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid username or password",
		})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Username, h.jwtSecret)
	if err != nil {
		middleware.Logger(c).Error("token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User: LoginUser{
			Username: user.Username,
		},
	})
}

// Logout handles user logout by returning 204 No Content.
// Token validation is performed by the AuthRequired middleware, so this handler only needs to
// return success. Since JWT is stateless, the actual token cleanup is handled by the client.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
