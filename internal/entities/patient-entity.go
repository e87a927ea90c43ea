package entities

type Patient struct {
	ID                  uint64 `json:"id"`
	MRN                 string `json:"mrn"`
	FullName            string `json:"full_name"`
	Ward                string `json:"ward"`
	Bed                 string `json:"bed"`
	RoomNumber          string `json:"room_number"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	Allergies           string `json:"allergies"`
}
