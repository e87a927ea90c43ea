package controllers

import (
	"net/http"

	"hospital-meals/internal/entities"
	"hospital-meals/internal/services"
	"hospital-meals/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuditController struct {
	auditService services.AuditServiceInterface
	logger       *zap.Logger
}

func NewAuditController(auditService services.AuditServiceInterface, logger *zap.Logger) *AuditController {
	return &AuditController{auditService: auditService, logger: logger}
}

func (c *AuditController) List(ctx echo.Context) error {
	entityID, err := utils.QueryInt(ctx, "entity_id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	limit, err := utils.QueryInt(ctx, "limit")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filter := entities.AuditFilter{
		Entity:   ctx.QueryParam("entity"),
		EntityID: uint64(entityID),
		Limit:    uint64(limit),
	}
	logs, err := c.auditService.List(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, logs, "Журнал аудита получен", http.StatusOK)
}
