package routes

import (
	"hospital-meals/internal/authz"
	"hospital-meals/internal/controllers"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runMenuRouter(secureGroup *echo.Group, menuService services.MenuServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	menuCtrl := controllers.NewMenuController(menuService, logger)

	secureGroup.GET("/menu", menuCtrl.List, authMW.AuthorizeRoles(authz.AnyStaff...))
	secureGroup.POST("/admin/menu/replace", menuCtrl.Replace, authMW.AuthorizeRoles(authz.AdminOnly...))
}
