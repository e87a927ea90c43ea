package dto

import "hospital-meals/internal/entities"

type LoginDTO struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Portal   string `json:"portal" validate:"omitempty,oneof=mess hospital"`
}

type UserDTO struct {
	ID       uint64        `json:"id"`
	Username string        `json:"username"`
	Role     entities.Role `json:"role"`
	FullName string        `json:"full_name"`
}

type AuthResponseDTO struct {
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expires_in"`
	User      UserDTO `json:"user"`
}

func NewUserDTO(u *entities.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Role: u.Role, FullName: u.FullName}
}
