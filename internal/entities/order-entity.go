package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusInKitchen      OrderStatus = "in_kitchen"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses - все допустимые статусы. Переход возможен из любого в любой.
var OrderStatuses = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusInKitchen,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ParseOrderStatus(v string) (OrderStatus, bool) {
	for _, s := range OrderStatuses {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

type ConsumptionStatus string

const (
	ConsumptionUnknown ConsumptionStatus = "unknown"
	ConsumptionEaten   ConsumptionStatus = "eaten"
	ConsumptionPartial ConsumptionStatus = "partial"
	ConsumptionRefused ConsumptionStatus = "refused"
)

// NormalizeConsumption приводит произвольный ввод к статусу потребления.
// Всё, кроме eaten/partial/refused, становится unknown.
func NormalizeConsumption(v string) ConsumptionStatus {
	switch c := ConsumptionStatus(v); c {
	case ConsumptionEaten, ConsumptionPartial, ConsumptionRefused:
		return c
	}
	return ConsumptionUnknown
}

// WastePercent - доля отходов, однозначно определяемая статусом потребления.
func (c ConsumptionStatus) WastePercent() int {
	switch c {
	case ConsumptionPartial:
		return 50
	case ConsumptionRefused:
		return 100
	}
	return 0
}

type Order struct {
	ID                    uint64            `json:"id"`
	PatientID             uint64            `json:"patient_id"`
	ItemID                uint64            `json:"item_id"`
	Status                OrderStatus       `json:"status"`
	ConsumptionStatus     ConsumptionStatus `json:"consumption_status"`
	WastePercent          int               `json:"waste_percent"`
	SpecialInstructions   null.String       `json:"special_instructions"`
	CreatedBy             uint64            `json:"created_by"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
	ConsumptionRecordedAt null.Time         `json:"consumption_recorded_at"`
}

// OrderView - заказ вместе с данными пациента и блюда для отображения.
type OrderView struct {
	Order
	PatientName         string `json:"patient_name"`
	Ward                string `json:"ward"`
	Bed                 string `json:"bed"`
	RoomNumber          string `json:"room_number"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	Allergies           string `json:"allergies"`
	ItemName            string `json:"item_name"`
}

type OrderFilter struct {
	Status string
	Ward   string
}
