package routes

import (
	"hospital-meals/internal/authz"
	"hospital-meals/internal/controllers"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAdminRouter(
	secureGroup *echo.Group,
	reportService services.ReportServiceInterface,
	auditService services.AuditServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	reportCtrl := controllers.NewReportController(reportService, logger)
	auditCtrl := controllers.NewAuditController(auditService, logger)

	admin := secureGroup.Group("/admin", authMW.AuthorizeRoles(authz.AdminOnly...))
	{
		admin.GET("/reports", reportCtrl.GetReports)
		admin.GET("/reports/export.xlsx", reportCtrl.ExportXLSX)
		admin.GET("/reports/export.csv", reportCtrl.ExportCSV)
		admin.GET("/audit", auditCtrl.List)
	}
}
