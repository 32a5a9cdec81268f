package auth

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const userIDContextKey = "userID"

// Authenticator guards routes and resolves the calling user. The handler
// layer depends on this abstractly; deployments pick the JWT implementation
// or the pass-through one.
type Authenticator interface {
	Middleware() echo.MiddlewareFunc
}

// CurrentUserID returns the authenticated user ID set by an Authenticator.
func CurrentUserID(c echo.Context) (string, error) {
	id, ok := c.Get(userIDContextKey).(string)
	if !ok || id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated user")
	}
	return id, nil
}

// JWTAuthenticator validates bearer tokens signed by the auth service.
type JWTAuthenticator struct {
	secret string
}

// NewJWTAuthenticator creates the production authenticator.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret}
}

// Middleware validates the Authorization header and stores the token subject
// in the request context.
func (a *JWTAuthenticator) Middleware() echo.MiddlewareFunc {
	// Default token lookup: Authorization header with the "Bearer " prefix.
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(a.secret),
	})
	extract := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(jwtv5.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			userID, _ := claims["user_id"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return jwtMiddleware(extract(next))
	}
}

// StaticAuthenticator is a pass-through for local development: every request
// runs as the configured user, no credentials checked.
type StaticAuthenticator struct {
	userID string
}

// NewStaticAuthenticator creates the pass-through authenticator.
func NewStaticAuthenticator(userID string) *StaticAuthenticator {
	return &StaticAuthenticator{userID: userID}
}

// Middleware injects the configured user into every request.
func (a *StaticAuthenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(userIDContextKey, a.userID)
			return next(c)
		}
	}
}
