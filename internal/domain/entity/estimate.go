package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"gorm.io/gorm"
)

// Estimate represents a priced proposal for work on a vehicle. An approved
// estimate converts into a Job carrying the same line items.
type Estimate struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	ShopID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID uuid.UUID           `gorm:"type:uuid;not null;index" json:"customer_id"`
	VehicleID  *uuid.UUID          `gorm:"type:uuid;index" json:"vehicle_id,omitempty"`
	Reference  string              `gorm:"size:100;unique;not null" json:"reference"`
	Status     enum.EstimateStatus `gorm:"default:0" json:"status"`
	Note       *string             `gorm:"type:text" json:"note,omitempty"`

	// Pricing snapshot in cents, presented as decimals by MarshalJSON.
	Subtotal  int64 `gorm:"default:0" json:"-"`
	TaxAmount int64 `gorm:"default:0" json:"-"`
	Total     int64 `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  *Vehicle       `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Items    []EstimateItem `gorm:"foreignKey:EstimateID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (e Estimate) MarshalJSON() ([]byte, error) {
	type Alias Estimate
	return json.Marshal(&struct {
		Alias
		Subtotal  float64 `json:"subtotal"`
		TaxAmount float64 `json:"tax_amount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(e),
		Subtotal:  float64(e.Subtotal) / 100,
		TaxAmount: float64(e.TaxAmount) / 100,
		Total:     float64(e.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new estimate
func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Estimate model
func (Estimate) TableName() string {
	return "estimates"
}

// EstimateItem represents a line item on an estimate
type EstimateItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	EstimateID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"estimate_id"`
	Type        enum.LineItemType `gorm:"size:20;not null" json:"type"`
	Description string            `gorm:"size:255;not null" json:"description"`
	Category    *string           `gorm:"size:100" json:"category,omitempty"`
	Quantity    float64           `gorm:"type:decimal(10,3);not null" json:"quantity"`
	UnitCost    int64             `gorm:"not null" json:"-"` // cents
	PartCost    *int64            `json:"-"`                 // cents
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Estimate Estimate `gorm:"foreignKey:EstimateID" json:"-"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (ei EstimateItem) MarshalJSON() ([]byte, error) {
	type Alias EstimateItem
	out := &struct {
		Alias
		UnitCost float64  `json:"unit_cost"`
		PartCost *float64 `json:"part_cost,omitempty"`
	}{
		Alias:    Alias(ei),
		UnitCost: float64(ei.UnitCost) / 100,
	}
	if ei.PartCost != nil {
		v := float64(*ei.PartCost) / 100
		out.PartCost = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new estimate item
func (ei *EstimateItem) BeforeCreate(tx *gorm.DB) error {
	if ei.ID == uuid.Nil {
		ei.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EstimateItem model
func (EstimateItem) TableName() string {
	return "estimate_items"
}
