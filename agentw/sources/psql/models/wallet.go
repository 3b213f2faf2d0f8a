package models

// Wallet is an identity row keyed by the user's address. Created on first
// contact, never updated, never deleted.
type Wallet struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserAddress string `json:"userAddress" gorm:"type:varchar(255);not null;uniqueIndex"`
}
