package events

import (
	"hospital-meals/internal/entities"
)

// Channel - единственный канал уведомлений, его получают все подписчики.
const Channel = "orders:updated"

type UpdateType string

const (
	TypeCreated      UpdateType = "created"
	TypeStatus       UpdateType = "status"
	TypeConsumption  UpdateType = "consumption"
	TypeMenuReloaded UpdateType = "menu_reloaded"
)

// OrderUpdatedEvent - конверт изменения заказа, различаемый по полю type.
// Для menu_reloaded заполнен только type.
type OrderUpdatedEvent struct {
	Type              UpdateType                 `json:"type"`
	OrderID           uint64                     `json:"orderId,omitempty"`
	Status            entities.OrderStatus       `json:"status,omitempty"`
	ConsumptionStatus entities.ConsumptionStatus `json:"consumption_status,omitempty"`
	Order             *entities.OrderView        `json:"order,omitempty"`
}

// Name - реализуем интерфейс eventbus.Event
func (e OrderUpdatedEvent) Name() string {
	return Channel
}

func NewOrderCreated(order *entities.OrderView) OrderUpdatedEvent {
	return OrderUpdatedEvent{Type: TypeCreated, OrderID: order.ID, Order: order}
}

func NewStatusChanged(order *entities.OrderView) OrderUpdatedEvent {
	return OrderUpdatedEvent{Type: TypeStatus, OrderID: order.ID, Status: order.Status, Order: order}
}

func NewConsumptionRecorded(order *entities.OrderView) OrderUpdatedEvent {
	return OrderUpdatedEvent{
		Type:              TypeConsumption,
		OrderID:           order.ID,
		ConsumptionStatus: order.ConsumptionStatus,
		Order:             order,
	}
}

func NewMenuReloaded() OrderUpdatedEvent {
	return OrderUpdatedEvent{Type: TypeMenuReloaded}
}
