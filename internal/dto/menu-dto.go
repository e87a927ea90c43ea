package dto

type MenuItemDTO struct {
	Name     string `json:"name" validate:"required,not_blank,max=200"`
	Category string `json:"category" validate:"required,not_blank,max=100"`
	Dietary  string `json:"dietary" validate:"max=200"`
}

// ReplaceMenuDTO - либо именованный набор блюд, либо свой список.
type ReplaceMenuDTO struct {
	Preset string        `json:"preset" validate:"omitempty,oneof=hospital indian"`
	Items  []MenuItemDTO `json:"items" validate:"omitempty,max=500,dive"`
}
