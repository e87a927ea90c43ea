package dto

type CreateTiffinOrderDTO struct {
	PatientName string `json:"patient_name" validate:"required,not_blank,max=200"`
	Ward        string `json:"ward" validate:"required,not_blank,max=100"`
	FoodType    string `json:"food_type" validate:"required,not_blank,max=200"`
	Quantity    int    `json:"quantity"`
	OrderDate   string `json:"order_date" validate:"required,iso_date"`
	Notes       string `json:"notes" validate:"max=1000"`
}

// UpdateTiffinOrderDTO заменяет все поля заказа. Пустой статус означает pending.
type UpdateTiffinOrderDTO struct {
	CreateTiffinOrderDTO
	Status string `json:"status" validate:"omitempty,tiffin_status"`
}

type UpdateTiffinStatusDTO struct {
	Status string `json:"status" validate:"required,tiffin_status"`
}
