package services

import (
	"context"

	"hospital-meals/internal/dto"
	"hospital-meals/internal/entities"

	"go.uber.org/zap"
)

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context, role entities.Role) (*dto.DashboardDTO, error)
}

// DashboardService собирает стартовый экран по роли: кухня видит новые заказы,
// доставка - заказы в пути, регистратура - тиффин-заказы, остальные - всё.
type DashboardService struct {
	orders OrderServiceInterface
	tiffin TiffinServiceInterface
	logger *zap.Logger
}

func NewDashboardService(orders OrderServiceInterface, tiffin TiffinServiceInterface, logger *zap.Logger) *DashboardService {
	return &DashboardService{orders: orders, tiffin: tiffin, logger: logger}
}

func (s *DashboardService) GetDashboard(ctx context.Context, role entities.Role) (*dto.DashboardDTO, error) {
	result := &dto.DashboardDTO{Role: role}

	switch role {
	case entities.RoleReceptionist:
		tiffins, err := s.tiffin.List(ctx, entities.TiffinFilter{})
		if err != nil {
			return nil, err
		}
		result.View = "tiffin_orders"
		result.TiffinOrders = tiffins
		return result, nil
	case entities.RoleKitchen:
		result.StatusFilter = string(entities.OrderStatusPlaced)
	case entities.RoleDelivery:
		result.StatusFilter = string(entities.OrderStatusOutForDelivery)
	}

	orders, err := s.orders.ListOrders(ctx, entities.OrderFilter{Status: result.StatusFilter})
	if err != nil {
		return nil, err
	}
	result.View = "orders"
	result.Orders = orders

	s.logger.Debug("Дашборд сформирован", zap.String("role", string(role)), zap.Int("orders", len(orders)))
	return result, nil
}
