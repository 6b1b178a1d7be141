package models

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the only role the dashboard knows about.
const RoleAdmin = "admin"

// AdminUser is a dashboard account.
type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AdminUserPublic is AdminUser without sensitive fields for API responses.
type AdminUserPublic struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"fullName"`
	Role     string    `json:"role"`
}

// ToPublic converts AdminUser to AdminUserPublic.
func (u *AdminUser) ToPublic() AdminUserPublic {
	return AdminUserPublic{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
