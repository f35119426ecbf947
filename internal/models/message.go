package models

import (
	"time"
)

// Message is a contact form submission
type Message struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"column:nev;size:100;not null"`
	Email       *string   `gorm:"column:email;size:255"`
	Phone       *string   `gorm:"column:telefon;size:50"`
	Body        string    `gorm:"column:uzenet;type:text;not null"`
	SenderIP    *string   `gorm:"column:bekuldo_ip;size:64"`
	SubmittedAt time.Time `gorm:"column:bekuldve;autoCreateTime;index"`
}

func (Message) TableName() string {
	return "uzenetek"
}
