package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice bills a completed job. Totals are snapshotted from the job at
// issue time so later settings changes never alter an issued invoice.
type Invoice struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShopID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"shop_id"`
	JobID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"job_id"`
	Number    string             `gorm:"size:100;unique;not null" json:"number"`
	Status    enum.InvoiceStatus `gorm:"size:20;default:'draft'" json:"status"`
	IssuedOn  time.Time          `gorm:"type:date;not null" json:"issued_on"`
	DueOn     *time.Time         `gorm:"type:date" json:"due_on,omitempty"`

	Subtotal        int64  `gorm:"default:0" json:"-"`
	ShopSuppliesFee *int64 `json:"-"`
	HazmatFee       *int64 `json:"-"`
	TaxAmount       int64  `gorm:"default:0" json:"-"`
	Total           int64  `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Job      Job       `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Payments []Payment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	out := &struct {
		Alias
		Subtotal        float64  `json:"subtotal"`
		ShopSuppliesFee *float64 `json:"shop_supplies_fee,omitempty"`
		HazmatFee       *float64 `json:"hazmat_fee,omitempty"`
		TaxAmount       float64  `json:"tax_amount"`
		Total           float64  `json:"total"`
	}{
		Alias:     Alias(i),
		Subtotal:  float64(i.Subtotal) / 100,
		TaxAmount: float64(i.TaxAmount) / 100,
		Total:     float64(i.Total) / 100,
	}
	if i.ShopSuppliesFee != nil {
		v := float64(*i.ShopSuppliesFee) / 100
		out.ShopSuppliesFee = &v
	}
	if i.HazmatFee != nil {
		v := float64(*i.HazmatFee) / 100
		out.HazmatFee = &v
	}
	return json.Marshal(out)
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// AmountPaid sums the invoice's recorded payments in cents
func (i *Invoice) AmountPaid() int64 {
	var paid int64
	for _, p := range i.Payments {
		paid += p.Amount
	}
	return paid
}

// Payment records money received against an invoice
type Payment struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Amount     int64              `gorm:"not null" json:"-"` // cents
	Method     enum.PaymentMethod `gorm:"size:20;not null" json:"method"`
	Reference  *string            `gorm:"size:255" json:"reference,omitempty"`
	ReceivedAt time.Time          `gorm:"not null" json:"received_at"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON converts cents to decimal amounts for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
