package routes

import (
	"hospital-meals/internal/authz"
	"hospital-meals/internal/controllers"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runPatientRouter(secureGroup *echo.Group, patientService services.PatientServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	patientCtrl := controllers.NewPatientController(patientService, logger)

	secureGroup.GET("/patients", patientCtrl.List, authMW.AuthorizeRoles(authz.AnyStaff...))

	admin := secureGroup.Group("/admin/patients", authMW.AuthorizeRoles(authz.AdminOnly...))
	{
		admin.POST("", patientCtrl.Create)
		admin.PUT("/:id", patientCtrl.Update)
		admin.DELETE("/:id", patientCtrl.Delete)
	}
}
