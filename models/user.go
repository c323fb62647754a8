package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Name       string    `json:"name"`
	Password   string    `gorm:"not null" json:"-"` // Don't expose password in JSON
	Role       string    `gorm:"not null;default:'user'" json:"role"`
	PromotedBy *string   `json:"promotedBy,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
