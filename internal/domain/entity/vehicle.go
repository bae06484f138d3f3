package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle represents a customer's vehicle
type Vehicle struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	Year         int            `json:"year"`
	Make         string         `gorm:"size:100;not null" json:"make"`
	Model        string         `gorm:"size:100;not null" json:"model"`
	VIN          *string        `gorm:"size:17;column:vin" json:"vin,omitempty"`
	LicensePlate *string        `gorm:"size:20" json:"license_plate,omitempty"`
	Mileage      *int           `json:"mileage,omitempty"`
	Color        *string        `gorm:"size:50" json:"color,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
	Jobs     []Job    `gorm:"foreignKey:VehicleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new vehicle
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}
