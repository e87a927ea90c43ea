package entities

type MenuItem struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Dietary  string `json:"dietary"`
}
