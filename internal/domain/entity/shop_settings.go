package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/pricing"
	"gorm.io/gorm"
)

// ShopSettings is the singleton pricing configuration for a shop: tax rate,
// the shop-supplies and hazmat surcharge rules, and the ordered set of job
// categories. It is mutated only via an explicit settings update and read by
// every pricing computation.
type ShopSettings struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShopID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"shop_id"`

	// TaxRate is a fraction, e.g. 0.0625 for 6.25%.
	TaxRate       float64       `gorm:"type:decimal(6,5);default:0" json:"tax_rate"`
	ShopSupplies  FeeRuleConfig `gorm:"type:jsonb;serializer:json" json:"shop_supplies"`
	Hazmat        FeeRuleConfig `gorm:"type:jsonb;serializer:json" json:"hazmat"`
	JobCategories StringList    `gorm:"type:jsonb" json:"job_categories"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shop Shop `gorm:"foreignKey:ShopID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *ShopSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ShopSettings model
func (ShopSettings) TableName() string {
	return "shop_settings"
}

// Pricing converts the persisted settings into the pure pricing form.
func (s *ShopSettings) Pricing() pricing.Settings {
	return pricing.Settings{
		TaxRate:      decimal.NewFromFloat(s.TaxRate),
		ShopSupplies: s.ShopSupplies.Rule(),
		Hazmat:       s.Hazmat.Rule(),
	}
}

// FeeRuleConfig is the JSON shape of a surcharge rule as stored on the
// settings row.
type FeeRuleConfig struct {
	Enabled    bool           `json:"enabled"`
	Method     enum.FeeMethod `json:"method"`
	Rate       float64        `json:"rate"`
	Cap        *float64       `json:"cap,omitempty"`
	Categories []string       `json:"categories,omitempty"`
}

// Rule converts the stored config to the pricing engine's decimal form.
func (c FeeRuleConfig) Rule() pricing.FeeRule {
	r := pricing.FeeRule{
		Enabled:    c.Enabled,
		Method:     c.Method,
		Rate:       decimal.NewFromFloat(c.Rate),
		Categories: c.Categories,
	}
	if c.Cap != nil {
		cap := decimal.NewFromFloat(*c.Cap)
		r.Cap = &cap
	}
	return r
}

// StringList stores an ordered list of strings as a JSONB column.
type StringList []string

// Scan implements the sql.Scanner interface for StringList
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan StringList: unsupported type")
	}

	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// DefaultShopSettings returns the settings applied to a shop with no
// explicit settings row.
func DefaultShopSettings(shopID uuid.UUID) *ShopSettings {
	return &ShopSettings{
		ShopID:  shopID,
		TaxRate: 0,
		ShopSupplies: FeeRuleConfig{
			Enabled: false,
			Method:  enum.FeePercentOfTotal,
		},
		Hazmat: FeeRuleConfig{
			Enabled: false,
			Method:  enum.FeePercentOfParts,
		},
		JobCategories: StringList{"maintenance", "brakes", "engine", "fluids", "tires", "diagnostics"},
	}
}
