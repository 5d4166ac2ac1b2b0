package auth

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"cinelog/internal/errors"
)

// Identity is the authenticated caller exposed to handlers. It lives only
// for the duration of a request.
type Identity struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Middleware returns the bearer token gate for protected routes. Requests
// without a `Authorization: Bearer <token>` header, or with a token the
// JWTService rejects, are turned away with 401 before reaching any handler.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			code := "INVALID_TOKEN"
			message := "invalid or expired token"
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				code = "MISSING_TOKEN"
				message = "missing or malformed authorization header"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: message,
				Code:  code,
			})
		},
	})
}

// CallerFromContext returns the identity the middleware attached to the
// request, or false when the route is not behind the gate.
func CallerFromContext(c echo.Context) (Identity, bool) {
	claims, ok := c.Get("user").(*Claims)
	if !ok {
		return Identity{}, false
	}
	return Identity{ID: claims.UserID, Name: claims.Name}, true
}
