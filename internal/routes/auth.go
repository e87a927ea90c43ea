package routes

import (
	"hospital-meals/internal/controllers"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.Refresh, authMW.Auth)
		authGroup.GET("/verify", authCtrl.Verify, authMW.Auth)
		authGroup.POST("/logout", authCtrl.Logout, authMW.Auth)
	}
}
