package routes

import (
	"hospital-meals/internal/authz"
	"hospital-meals/internal/controllers"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runTiffinRouter(secureGroup *echo.Group, tiffinService services.TiffinServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	tiffinCtrl := controllers.NewTiffinController(tiffinService, logger)
	manage := authMW.AuthorizeRoles(authz.TiffinManage...)

	tiffin := secureGroup.Group("/tiffin-orders")
	{
		tiffin.GET("", tiffinCtrl.List, authMW.AuthorizeRoles(authz.AnyStaff...))
		tiffin.GET("/:id", tiffinCtrl.Find, authMW.AuthorizeRoles(authz.AnyStaff...))
		tiffin.POST("", tiffinCtrl.Create, manage)
		tiffin.PUT("/:id", tiffinCtrl.Update, manage)
		tiffin.POST("/:id/status", tiffinCtrl.UpdateStatus, manage)
		tiffin.DELETE("/:id", tiffinCtrl.Delete, manage)
	}
}
