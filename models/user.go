package models

import "time"

type User struct {
	ID           string           `gorm:"primaryKey" json:"id"`
	Email        string           `gorm:"unique;not null" json:"email"`
	Name         string           `json:"name"`
	PasswordHash string           `gorm:"not null" json:"-"`
	Profile      *DeliveryProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Orders       []Order          `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// DeliveryProfile holds the delivery details a user must fill in before
// checkout is allowed to proceed.
type DeliveryProfile struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string `gorm:"uniqueIndex;not null" json:"user_id"`
	DeliveryAddress string `json:"delivery_address"`
	Phone           string `json:"phone"`
}
