package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"gorm.io/gorm"
)

// ParkingSpot represents one rentable space in the shop's lot
type ParkingSpot struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	Label       string         `gorm:"size:50;not null" json:"label"`
	Covered     bool           `gorm:"default:false" json:"covered"`
	MonthlyRate int64          `gorm:"default:0" json:"-"` // cents
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Reservations []ParkingReservation `gorm:"foreignKey:SpotID" json:"-"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (s ParkingSpot) MarshalJSON() ([]byte, error) {
	type Alias ParkingSpot
	return json.Marshal(&struct {
		Alias
		MonthlyRate float64 `json:"monthly_rate"`
	}{
		Alias:       Alias(s),
		MonthlyRate: float64(s.MonthlyRate) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new spot
func (s *ParkingSpot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ParkingSpot model
func (ParkingSpot) TableName() string {
	return "parking_spots"
}

// ParkingReservation represents a reservation taken through the public lot
// form. CustomerID is a best-effort link: the reservation stands on its own
// contact fields and must save even when no customer record could be
// matched or created.
type ParkingReservation struct {
	ID         uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	ShopID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"shop_id"`
	SpotID     uuid.UUID              `gorm:"type:uuid;not null;index" json:"spot_id"`
	CustomerID *uuid.UUID             `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	FirstName  string                 `gorm:"size:255;not null" json:"first_name"`
	LastName   string                 `gorm:"size:255;not null" json:"last_name"`
	Email      *string                `gorm:"size:255" json:"email,omitempty"`
	Phone      *string                `gorm:"size:50" json:"phone,omitempty"`
	StartsOn   time.Time              `gorm:"type:date;not null" json:"starts_on"`
	EndsOn     *time.Time             `gorm:"type:date" json:"ends_on,omitempty"`
	Status     enum.ReservationStatus `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
	DeletedAt  gorm.DeletedAt         `gorm:"index" json:"-"`

	// Relationships
	Spot     ParkingSpot `gorm:"foreignKey:SpotID" json:"spot,omitempty"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new reservation
func (r *ParkingReservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ParkingReservation model
func (ParkingReservation) TableName() string {
	return "parking_reservations"
}
