package middleware

import (
	"net/http"

	"github.com/blogcraft/blog-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthRequired for downstream handlers.
const (
	UserIDKey   = "user_id"
	UsernameKey = "username"
)

// LoginPath is where unauthenticated clients are sent to obtain a token.
const LoginPath = "/auth/login"

// ErrorResponse represents the structure for error responses
type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	LoginURL string `json:"login_url,omitempty"`
}

// AuthRequired validates JWT bearer tokens and protects routes from
// unauthorized access. Unauthenticated requests get a 401 pointing at the
// login endpoint; access is deferred, not denied outright.
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		token, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:     http.StatusUnauthorized,
				Message:  "Authentication required",
				LoginURL: LoginPath,
			})
			return
		}

		claims, err := auth.ValidateToken(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:     http.StatusUnauthorized,
				Message:  "Invalid token",
				LoginURL: LoginPath,
			})
			return
		}

		// Identify the requester for downstream handlers
		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)

		c.Next()
	}
}
