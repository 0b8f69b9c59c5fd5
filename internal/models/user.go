package models

import "time"

type UserRole string

const (
	RoleSuperAdmin UserRole = "super_admin"
	RoleOwner      UserRole = "owner"
)

type User struct {
	ID              string   `gorm:"primaryKey;size:128"`
	Email           string   `gorm:"size:100;index"`
	PasswordHash    string   `gorm:"size:255"` // firebase modunda boş kalır
	Role            UserRole `gorm:"size:20;not null"`
	WeeklyWasteGoal *float64 // haftalık maksimum zayiat maliyeti
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
