package entities

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleNurse        Role = "nurse"
	RoleKitchen      Role = "kitchen"
	RoleDelivery     Role = "delivery"
	RoleReceptionist Role = "receptionist"
)

// Порталы входа: "mess" только для администратора столовой,
// "hospital" для персонала отделений.
const (
	PortalMess     = "mess"
	PortalHospital = "hospital"
)

// AllowedInPortal сообщает, может ли роль входить через указанный портал.
// Пустой портал не ограничивает вход.
func (r Role) AllowedInPortal(portal string) bool {
	switch portal {
	case "":
		return true
	case PortalMess:
		return r == RoleAdmin
	case PortalHospital:
		return r == RoleNurse || r == RoleKitchen || r == RoleDelivery || r == RoleReceptionist
	}
	return false
}
