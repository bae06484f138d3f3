package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer represents a customer of the shop. Email is matched
// case-insensitively; Phone, when present, is stored normalized to E.164.
type Customer struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"shop_id"`
	FirstName string            `gorm:"size:255;not null" json:"first_name"`
	LastName  string            `gorm:"size:255;not null" json:"last_name"`
	Email     *string           `gorm:"size:255;index" json:"email,omitempty"`
	Phone     *string           `gorm:"size:50;index" json:"phone,omitempty"`
	Type      enum.CustomerType `gorm:"size:20;default:'retail'" json:"customer_type"`
	Notes     *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Shop     Shop      `gorm:"foreignKey:ShopID" json:"-"`
	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"-"`
	Jobs     []Job     `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
