package models

import "time"

// ChatMessage is one half of a conversational turn. Every turn writes two
// rows: the user row carries an empty Response, the assistant row mirrors
// its text into Response. Role is the discriminator; rows written before
// the column existed leave it empty and are classified by the
// Message == Response equality fallback.
type ChatMessage struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserAddress string    `json:"userAddress" gorm:"type:varchar(255);not null;index"`
	SessionID   string    `json:"sessionId" gorm:"type:uuid;not null;index"`
	Role        string    `json:"role" gorm:"type:varchar(50)"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	Response    string    `json:"response" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"not null;index"`
}
