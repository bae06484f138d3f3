package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"gorm.io/gorm"
)

// Job represents a repair order tracking a vehicle's service from intake to
// payment. Money totals are snapshots of the last pricing run, stored in
// cents. The fee columns are null when the corresponding rule was disabled
// at calculation time, so a disabled fee never renders as $0.
type Job struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ShopID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"shop_id"`
	CustomerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"customer_id"`
	VehicleID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Number      string         `gorm:"size:100;unique;not null" json:"number"`
	Status      enum.JobStatus `gorm:"default:0" json:"status"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CompletedAt *time.Time     `gorm:"type:date" json:"completed_at,omitempty"`

	// Pricing snapshot, stored in cents and excluded from JSON; the custom
	// marshaler below presents decimal amounts.
	LaborSubtotal   int64  `gorm:"default:0" json:"-"`
	PartsSubtotal   int64  `gorm:"default:0" json:"-"`
	Subtotal        int64  `gorm:"default:0" json:"-"`
	ShopSuppliesFee *int64 `json:"-"`
	HazmatFee       *int64 `json:"-"`
	TaxAmount       int64  `gorm:"default:0" json:"-"`
	Total           int64  `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Items    []JobItem `gorm:"foreignKey:JobID" json:"items,omitempty"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (j Job) MarshalJSON() ([]byte, error) {
	type Alias Job
	out := &struct {
		Alias
		LaborSubtotal   float64  `json:"labor_subtotal"`
		PartsSubtotal   float64  `json:"parts_subtotal"`
		Subtotal        float64  `json:"subtotal"`
		ShopSuppliesFee *float64 `json:"shop_supplies_fee,omitempty"`
		HazmatFee       *float64 `json:"hazmat_fee,omitempty"`
		TaxAmount       float64  `json:"tax_amount"`
		Total           float64  `json:"total"`
	}{
		Alias:         Alias(j),
		LaborSubtotal: float64(j.LaborSubtotal) / 100,
		PartsSubtotal: float64(j.PartsSubtotal) / 100,
		Subtotal:      float64(j.Subtotal) / 100,
		TaxAmount:     float64(j.TaxAmount) / 100,
		Total:         float64(j.Total) / 100,
	}
	if j.ShopSuppliesFee != nil {
		v := float64(*j.ShopSuppliesFee) / 100
		out.ShopSuppliesFee = &v
	}
	if j.HazmatFee != nil {
		v := float64(*j.HazmatFee) / 100
		out.HazmatFee = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new job
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Job model
func (Job) TableName() string {
	return "jobs"
}

// JobItem represents a single billable labor or part entry on a job
type JobItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	JobID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_id"`
	Type        enum.LineItemType `gorm:"size:20;not null" json:"type"`
	Description string            `gorm:"size:255;not null" json:"description"`
	Category    *string           `gorm:"size:100" json:"category,omitempty"`
	Quantity    float64           `gorm:"type:decimal(10,3);not null" json:"quantity"`
	UnitCost    int64             `gorm:"not null" json:"-"` // cents
	PartCost    *int64            `json:"-"`                 // cents; cost basis, parts only
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Job Job `gorm:"foreignKey:JobID" json:"-"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (ji JobItem) MarshalJSON() ([]byte, error) {
	type Alias JobItem
	out := &struct {
		Alias
		UnitCost float64  `json:"unit_cost"`
		PartCost *float64 `json:"part_cost,omitempty"`
	}{
		Alias:    Alias(ji),
		UnitCost: float64(ji.UnitCost) / 100,
	}
	if ji.PartCost != nil {
		v := float64(*ji.PartCost) / 100
		out.PartCost = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new job item
func (ji *JobItem) BeforeCreate(tx *gorm.DB) error {
	if ji.ID == uuid.Nil {
		ji.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JobItem model
func (JobItem) TableName() string {
	return "job_items"
}
