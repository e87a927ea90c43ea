package controllers

import (
	"net/http"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/services"
	apperrors "hospital-meals/pkg/errors"
	"hospital-meals/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MenuController struct {
	menuService services.MenuServiceInterface
	logger      *zap.Logger
}

func NewMenuController(menuService services.MenuServiceInterface, logger *zap.Logger) *MenuController {
	return &MenuController{menuService: menuService, logger: logger}
}

func (c *MenuController) List(ctx echo.Context) error {
	items, err := c.menuService.ListItems(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Меню получено", http.StatusOK)
}

// Replace заменяет меню целиком. Все текущие заказы при этом удаляются.
func (c *MenuController) Replace(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.ReplaceMenuDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат меню"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	items, err := c.menuService.Replace(reqCtx, payload, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Меню заменено", http.StatusOK)
}
