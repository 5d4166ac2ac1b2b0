package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cinelog/internal/auth"
	"cinelog/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	movieHandler *handler.MovieHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", auth.Middleware(jwtService))

	secured.GET("/auth/protected", authHandler.Protected)

	secured.POST("/movies", movieHandler.Create)
	secured.GET("/movies", movieHandler.List)
	secured.GET("/movies/:id", movieHandler.GetByID)
	secured.PUT("/movies/:id", movieHandler.Replace)
	secured.PATCH("/movies/:id", movieHandler.PartialUpdate)
	secured.DELETE("/movies/:id", movieHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
