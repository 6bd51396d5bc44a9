package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"vyzioads/internal/domain/entity"
	"vyzioads/internal/domain/repository"
)

type AuthMiddleware struct {
	authClient *auth.Client
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(authClient *auth.Client, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

// Authenticate verifies the Firebase ID token and resolves it to a
// primary-store user row, which lands on the context as "user".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		token, err := m.authClient.VerifyIDToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := m.userRepo.GetByFirebaseUID(c.Request().Context(), token.UID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
		}

		c.Set("uid", token.UID)
		c.Set("user", user)

		return next(c)
	}
}

// CurrentUser pulls the authenticated user off the context; nil when the
// request came through an unauthenticated route.
func CurrentUser(c echo.Context) *entity.User {
	user, ok := c.Get("user").(*entity.User)
	if !ok {
		return nil
	}
	return user
}
