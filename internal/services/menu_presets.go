package services

import "hospital-meals/internal/entities"

const (
	PresetHospital = "hospital"
	PresetIndian   = "indian"
)

func item(name, category, dietary string) entities.MenuItem {
	return entities.MenuItem{Name: name, Category: category, Dietary: dietary}
}

// MenuPresets - именованные наборы блюд для замены меню.
var MenuPresets = map[string][]entities.MenuItem{
	PresetHospital: {
		item("Oatmeal", "Breakfast", "Vegetarian"),
		item("Scrambled Eggs", "Breakfast", "High Protein"),
		item("Whole Wheat Toast", "Breakfast", "Vegetarian"),
		item("Chicken Soup", "Lunch", "High Protein"),
		item("Steamed Vegetables", "Lunch", "Vegan"),
		item("Grilled Fish", "Lunch", ""),
		item("Rice Porridge", "Dinner", "Vegetarian, Light"),
		item("Baked Potato", "Dinner", "Vegetarian"),
		item("Fruit Salad", "Snack", "Gluten-Free"),
		item("Yogurt", "Snack", "Vegetarian"),
	},
	PresetIndian: {
		item("Idli with Sambar", "Breakfast", "Vegetarian"),
		item("Masala Dosa", "Breakfast", "Vegetarian"),
		item("Poha", "Breakfast", "Vegetarian"),
		item("Upma", "Breakfast", "Vegetarian"),
		item("Paratha (Aloo/Gobi)", "Breakfast", "Vegetarian"),

		item("Dal Tadka", "Lunch", "Vegetarian"),
		item("Rajma Masala", "Lunch", "Vegetarian"),
		item("Chole (Chickpea Curry)", "Lunch", "Vegan"),
		item("Paneer Butter Masala", "Lunch", "Vegetarian"),
		item("Chicken Curry", "Lunch", ""),
		item("Veg Biryani", "Lunch", "Vegetarian"),
		item("Chicken Biryani", "Lunch", ""),
		item("Jeera Rice", "Lunch", "Vegan, Gluten-Free"),
		item("Roti/Chapati", "Lunch", "Vegan"),

		item("Palak Paneer", "Dinner", "Vegetarian"),
		item("Fish Curry", "Dinner", ""),
		item("Mixed Veg Curry", "Dinner", "Vegan"),
		item("Kadhi", "Dinner", "Vegetarian"),
		item("Khichdi", "Dinner", "Vegetarian, Light"),

		item("Samosa (Baked)", "Snack", "Vegetarian"),
		item("Onion Pakora", "Snack", "Vegan"),
		item("Masala Chai", "Snack", ""),
		item("Sweet Lassi", "Snack", "Vegetarian"),
		item("Raita (Curd)", "Snack", "Vegetarian"),
	},
}

// DefaultMenu - меню новой базы, его кладёт сидер.
var DefaultMenu = []entities.MenuItem{
	item("Oatmeal", "Breakfast", "Vegetarian"),
	item("Grilled Chicken", "Lunch", "High Protein"),
	item("Vegetable Soup", "Dinner", "Vegan"),
	item("Fruit Salad", "Snack", "Gluten-Free"),
}
