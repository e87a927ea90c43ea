package routes

import (
	"hospital-meals/internal/authz"
	"hospital-meals/internal/controllers"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runOrderRouter(
	secureGroup *echo.Group,
	orderService services.OrderServiceInterface,
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	orderCtrl := controllers.NewOrderController(orderService, logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)

	secureGroup.GET("/dashboard", dashboardCtrl.GetDashboard, authMW.AuthorizeRoles(authz.AnyStaff...))

	orders := secureGroup.Group("/orders")
	{
		orders.GET("", orderCtrl.ListOrders, authMW.AuthorizeRoles(authz.AnyStaff...))
		orders.GET("/:id", orderCtrl.FindOrder, authMW.AuthorizeRoles(authz.AnyStaff...))
		orders.POST("", orderCtrl.CreateOrder, authMW.AuthorizeRoles(authz.OrdersCreate...))
		orders.POST("/:id/status", orderCtrl.SetStatus, authMW.AuthorizeRoles(authz.OrdersSetStatus...))
		orders.POST("/:id/consumption", orderCtrl.RecordConsumption, authMW.AuthorizeRoles(authz.OrdersConsumption...))
	}
}
