package dto

import "github.com/aarondl/null/v8"

type CreatePatientDTO struct {
	MRN                 string `json:"mrn" validate:"max=64"`
	FullName            string `json:"full_name" validate:"required,not_blank,max=200"`
	Ward                string `json:"ward" validate:"required,not_blank,max=100"`
	Bed                 string `json:"bed" validate:"max=50"`
	RoomNumber          string `json:"room_number" validate:"max=50"`
	DietaryRestrictions string `json:"dietary_restrictions" validate:"max=500"`
	Allergies           string `json:"allergies" validate:"max=500"`
}

// UpdatePatientDTO - частичное обновление: отсутствующие поля не меняются.
type UpdatePatientDTO struct {
	FullName            null.String `json:"full_name" validate:"omitempty,not_blank,max=200"`
	Ward                null.String `json:"ward" validate:"omitempty,not_blank,max=100"`
	Bed                 null.String `json:"bed" validate:"omitempty,max=50"`
	RoomNumber          null.String `json:"room_number" validate:"omitempty,max=50"`
	DietaryRestrictions null.String `json:"dietary_restrictions" validate:"omitempty,max=500"`
	Allergies           null.String `json:"allergies" validate:"omitempty,max=500"`
}
