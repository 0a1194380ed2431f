package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Driver carries the delivery-side attributes of a profile with the driver role.
type Driver struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ProfileID   string    `json:"profile_id" gorm:"not null;uniqueIndex"`
	Profile     Profile   `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	VehicleType string    `json:"vehicle_type"`
	PlateNumber string    `json:"plate_number"`
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
