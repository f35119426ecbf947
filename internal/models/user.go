package models

import (
	"time"
)

// Roles stored in users.szerep. RoleGuest is never stored; it marks routes open to anonymous visitors.
const (
	RoleAdmin      = "admin"
	RoleRegistered = "registered"
	RoleGuest      = "guest"
)

type User struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"column:nev;size:100;not null"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null"`
	Password  string    `gorm:"column:jelszo;size:255;not null"`
	Role      string    `gorm:"column:szerep;size:20;not null;default:registered"`
	CreatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
