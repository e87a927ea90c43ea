// internal/authz/permissions.go
package authz

import "hospital-meals/internal/entities"

// --- СТАТИЧЕСКИЕ СПИСКИ РОЛЕЙ ДЛЯ МАРШРУТОВ ---

func roles(list ...entities.Role) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, string(r))
	}
	return out
}

var (
	// Любой аутентифицированный сотрудник
	AnyStaff = roles(
		entities.RoleAdmin,
		entities.RoleNurse,
		entities.RoleKitchen,
		entities.RoleDelivery,
		entities.RoleReceptionist,
	)

	// Заказы пациентов
	OrdersCreate      = roles(entities.RoleNurse, entities.RoleAdmin)
	OrdersSetStatus   = roles(entities.RoleKitchen, entities.RoleDelivery, entities.RoleAdmin)
	OrdersConsumption = roles(entities.RoleDelivery, entities.RoleAdmin)

	// Тиффин-заказы
	TiffinManage = roles(entities.RoleReceptionist, entities.RoleAdmin)

	// Администрирование: меню, пациенты, отчёты, журнал
	AdminOnly = roles(entities.RoleAdmin)
)
