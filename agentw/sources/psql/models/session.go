package models

import "time"

type ChatSession struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserAddress string    `json:"userAddress" gorm:"type:varchar(255);not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"not null"`
}
