package dto

import "hospital-meals/internal/entities"

// DashboardDTO - стартовый экран, зависящий от роли.
type DashboardDTO struct {
	Role         entities.Role          `json:"role"`
	View         string                 `json:"view"`
	StatusFilter string                 `json:"status_filter,omitempty"`
	Orders       []entities.OrderView   `json:"orders,omitempty"`
	TiffinOrders []entities.TiffinOrder `json:"tiffin_orders,omitempty"`
}
