package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"buslink/internal/auth"
	"buslink/internal/handler"
)

// Register wires routes and middleware. The Authenticator guards everything
// under the secured group; which implementation it is depends on deployment
// mode.
func Register(
	e *echo.Echo,
	authn auth.Authenticator,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public session routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes
	secured := api.Group("", authn.Middleware())
	secured.GET("/auth/user", authHandler.GetUser)
	secured.GET("/companies/profile", companyHandler.GetProfile)
	secured.PATCH("/companies/profile", companyHandler.UpdateProfile)
}

// CustomValidator wraps validator for Echo. Field names in errors come from
// the json tag so clients see the names they sent.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the echo validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
