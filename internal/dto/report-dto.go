package dto

import "hospital-meals/internal/entities"

// ReportParamsDTO - нулевые значения заменяются значениями по умолчанию.
type ReportParamsDTO struct {
	Days  int
	Weeks int
	Limit int
}

type ReportSummaryDTO struct {
	Days             int                     `json:"days"`
	Weeks            int                     `json:"weeks"`
	Limit            int                     `json:"limit"`
	Daily            []entities.DailyCount   `json:"daily"`
	Weekly           []entities.WeeklyCount  `json:"weekly"`
	TopDishes        []entities.DishCount    `json:"top_dishes"`
	ByDiet           []entities.DietaryCount `json:"by_diet"`
	WasteByWardDaily []entities.WardWaste    `json:"waste_by_ward_daily"`
}
