package controllers

import (
	"net/http"

	"hospital-meals/internal/entities"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	role, err := utils.GetUserRoleFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	dashboard, err := c.dashboardService.GetDashboard(reqCtx, entities.Role(role))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dashboard, "Данные дашборда получены", http.StatusOK)
}
