package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Business struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	OwnerID      string    `json:"owner_id" gorm:"not null;index"`
	Owner        Profile   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Address      string    `json:"address"`
	ImageURL     string    `json:"image_url"`
	DeliveryFee  float64   `json:"delivery_fee" gorm:"default:0"`
	DeliveryTime string    `json:"delivery_time"` // e.g. "25-35 min"
	IsOpen       bool      `json:"is_open" gorm:"default:true"`
	Rating       float64   `json:"rating" gorm:"default:0"`
	Products     []Product `json:"products,omitempty" gorm:"foreignKey:BusinessID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type Product struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	BusinessID  string    `json:"business_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
