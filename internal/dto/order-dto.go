package dto

type CreateOrderDTO struct {
	PatientID           uint64 `json:"patient_id" validate:"required"`
	ItemID              uint64 `json:"item_id" validate:"required"`
	SpecialInstructions string `json:"special_instructions" validate:"max=500"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" validate:"required,order_status"`
}

// RecordConsumptionDTO не валидируется: неизвестные значения приводятся к unknown.
type RecordConsumptionDTO struct {
	ConsumptionStatus string `json:"consumption_status"`
}
