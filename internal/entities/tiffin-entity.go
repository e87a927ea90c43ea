package entities

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"
)

const DateLayout = "2006-01-02"

type TiffinStatus string

const (
	TiffinStatusPending   TiffinStatus = "pending"
	TiffinStatusConfirmed TiffinStatus = "confirmed"
	TiffinStatusPreparing TiffinStatus = "preparing"
	TiffinStatusReady     TiffinStatus = "ready"
	TiffinStatusDelivered TiffinStatus = "delivered"
	TiffinStatusCancelled TiffinStatus = "cancelled"
)

var TiffinStatuses = []TiffinStatus{
	TiffinStatusPending,
	TiffinStatusConfirmed,
	TiffinStatusPreparing,
	TiffinStatusReady,
	TiffinStatusDelivered,
	TiffinStatusCancelled,
}

func ParseTiffinStatus(v string) (TiffinStatus, bool) {
	for _, s := range TiffinStatuses {
		if string(s) == v {
			return s, true
		}
	}
	return "", false
}

// TiffinOrder - разовый заказ еды без привязки к карточке пациента.
type TiffinOrder struct {
	ID          uint64       `json:"id"`
	PatientName string       `json:"patient_name"`
	Ward        string       `json:"ward"`
	FoodType    string       `json:"food_type"`
	Quantity    int          `json:"quantity"`
	OrderDate   time.Time    `json:"-"`
	Status      TiffinStatus `json:"status"`
	Notes       string       `json:"notes"`
	CreatedBy   null.Uint64  `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// OrderDateString - дата заказа в формате YYYY-MM-DD.
func (t TiffinOrder) OrderDateString() string {
	return t.OrderDate.Format(DateLayout)
}

type TiffinFilter struct {
	Status    string
	Ward      string
	OrderDate string
}

// MarshalJSON отдаёт order_date календарной датой без времени.
func (t TiffinOrder) MarshalJSON() ([]byte, error) {
	type alias TiffinOrder
	return json.Marshal(struct {
		alias
		OrderDate string `json:"order_date"`
	}{alias: alias(t), OrderDate: t.OrderDateString()})
}
