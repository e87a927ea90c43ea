package entities

type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type WeeklyCount struct {
	Week  string `json:"week"`
	Count int64  `json:"count"`
}

type DishCount struct {
	ItemID   uint64 `json:"item_id"`
	ItemName string `json:"item_name"`
	Count    int64  `json:"count"`
}

type DietaryCount struct {
	Restriction string `json:"restriction"`
	Count       int64  `json:"count"`
}

type WardWaste struct {
	Day          string  `json:"day"`
	Ward         string  `json:"ward"`
	WastePercent float64 `json:"waste_percent"`
}
