package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	AuditEntityOrder   = "order"
	AuditEntityTiffin  = "tiffin_order"
	AuditEntityPatient = "patient"
	AuditEntityMenu    = "menu"
	AuditEntityAuth    = "auth"
)

// AuditLog - запись журнала изменений. Журнал только дополняется.
type AuditLog struct {
	ID        uint64      `json:"id"`
	Entity    string      `json:"entity"`
	EntityID  uint64      `json:"entity_id"`
	Action    string      `json:"action"`
	Details   string      `json:"details"`
	UserID    null.Uint64 `json:"user_id"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditFilter struct {
	Entity   string
	EntityID uint64
	Limit    uint64
}
