package seeders

import "hospital-meals/internal/entities"

type seedUser struct {
	Username string
	Password string
	Role     entities.Role
	FullName string
}

// Демо-учётки. Пароли только для локальной разработки.
var demoUsers = []seedUser{
	{"messowner", "mess123", entities.RoleAdmin, "Mess Owner"},
	{"admin", "admin123", entities.RoleAdmin, "System Admin"},
	{"nurse1", "nurse123", entities.RoleNurse, "Nurse Joy"},
	{"kitchen1", "kitchen123", entities.RoleKitchen, "Chef Alex"},
	{"delivery1", "delivery123", entities.RoleDelivery, "Rider Sam"},
	{"receptionist1", "reception123", entities.RoleReceptionist, "Receptionist Sarah"},
}

var demoPatients = []entities.Patient{
	{MRN: "MRN-001", FullName: "John Doe", Ward: "Ward A", Bed: "A-12", RoomNumber: "A-12", DietaryRestrictions: "Low Sodium", Allergies: "Penicillin"},
	{MRN: "MRN-002", FullName: "Jane Smith", Ward: "Ward B", Bed: "B-03", RoomNumber: "B-03", DietaryRestrictions: "Diabetic", Allergies: "Nuts"},
}

type seedOrder struct {
	MRN          string
	Item         string
	Instructions string
	Status       entities.OrderStatus
}

var demoOrders = []seedOrder{
	{"MRN-001", "Oatmeal", "No sugar", entities.OrderStatusPlaced},
	{"MRN-001", "Grilled Chicken", "", entities.OrderStatusInKitchen},
	{"MRN-002", "Vegetable Soup", "Extra hot", entities.OrderStatusOutForDelivery},
	{"MRN-002", "Fruit Salad", "", entities.OrderStatusDelivered},
}
