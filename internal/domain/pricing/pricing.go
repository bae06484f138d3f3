// Package pricing computes job and estimate totals: line subtotals, the
// shop-supplies and hazmat surcharges, and tax. All functions are pure;
// callers load ShopSettings and pass them in explicitly.
//
// Amounts are decimal currency units. Intermediate values are never rounded;
// RoundCents is applied once at the presented-total boundary so rounding
// error cannot compound across many line items.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
)

var (
	// ErrNegativeRate indicates a fee rule or tax rate below zero.
	ErrNegativeRate = errors.New("pricing: rate must not be negative")
	// ErrNegativeCap indicates a fee cap below zero.
	ErrNegativeCap = errors.New("pricing: cap must not be negative")
	// ErrTaxRateRange indicates a tax rate outside [0, 1].
	ErrTaxRateRange = errors.New("pricing: tax rate must be a fraction between 0 and 1")
	// ErrUnknownMethod indicates an unrecognized fee method.
	ErrUnknownMethod = errors.New("pricing: unknown fee method")
	// ErrDuplicateCategory indicates a fee rule listing the same category twice.
	ErrDuplicateCategory = errors.New("pricing: duplicate category in fee rule")
)

// LineItem is one billable entry on a job or estimate. Inputs are validated
// upstream (Quantity > 0, UnitCost >= 0); the calculator has no failure path.
type LineItem struct {
	Type     enum.LineItemType
	Category string
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
	// Cost is a part's own cost basis, tracked for margin reporting only.
	// It never contributes to the customer-facing total. Labor has none.
	Cost decimal.Decimal
}

// LineTotal returns Quantity * UnitCost as an exact decimal, unrounded.
func LineTotal(item LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.UnitCost)
}

// FeeRule configures one surcharge (shop supplies or hazmat).
type FeeRule struct {
	Enabled bool
	Method  enum.FeeMethod
	// Rate is a fraction for percent methods (0.05 = 5%, unbounded above)
	// or a flat currency amount for the flat method.
	Rate decimal.Decimal
	// Cap, when set, is the maximum fee amount.
	Cap *decimal.Decimal
	// Categories, when non-empty, restricts which line item categories
	// count toward this fee's base. Items outside the set still count
	// toward the overall subtotal and the tax base.
	Categories []string
}

// Validate rejects rules that would produce a negative fee.
func (r FeeRule) Validate() error {
	if r.Rate.IsNegative() {
		return ErrNegativeRate
	}
	if r.Cap != nil && r.Cap.IsNegative() {
		return ErrNegativeCap
	}
	if r.Enabled && !r.Method.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, r.Method)
	}
	seen := make(map[string]struct{}, len(r.Categories))
	for _, c := range r.Categories {
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateCategory, c)
		}
		seen[c] = struct{}{}
	}
	return nil
}

// Settings carries everything ComputeTotals needs. It is constructed from the
// shop's persisted settings row at call time, never read ambiently.
type Settings struct {
	// TaxRate is a fraction in [0, 1].
	TaxRate      decimal.Decimal
	ShopSupplies FeeRule
	Hazmat       FeeRule
}

// Validate rejects settings that would make a computation silently wrong.
func (s Settings) Validate() error {
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrTaxRateRange
	}
	if err := s.ShopSupplies.Validate(); err != nil {
		return fmt.Errorf("shop supplies: %w", err)
	}
	if err := s.Hazmat.Validate(); err != nil {
		return fmt.Errorf("hazmat: %w", err)
	}
	return nil
}

// Totals is the full pricing breakdown for a set of line items.
// Fee fields are nil when the rule is disabled, so callers can tell
// "no fee configured" apart from "fee computed to zero".
type Totals struct {
	LaborSubtotal   decimal.Decimal
	PartsSubtotal   decimal.Decimal
	Subtotal        decimal.Decimal
	ShopSuppliesFee *decimal.Decimal
	HazmatFee       *decimal.Decimal
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
	// PartsCost sums the cost basis of part items, for margin reporting.
	PartsCost decimal.Decimal
}

// ComputeTotals prices a set of line items under the given settings.
//
// Surcharges are applied before tax and are themselves taxable: the tax base
// is subtotal + shop supplies + hazmat. That ordering is a deliberate policy
// of the shop's billing rules.
func ComputeTotals(items []LineItem, s Settings) (Totals, error) {
	if err := s.Validate(); err != nil {
		return Totals{}, err
	}

	var t Totals
	for _, item := range items {
		total := LineTotal(item)
		if item.Type == enum.LineItemPart {
			t.PartsSubtotal = t.PartsSubtotal.Add(total)
			t.PartsCost = t.PartsCost.Add(item.Cost)
		} else {
			t.LaborSubtotal = t.LaborSubtotal.Add(total)
		}
	}
	t.Subtotal = t.LaborSubtotal.Add(t.PartsSubtotal)

	feeTotal := decimal.Zero
	if s.ShopSupplies.Enabled {
		fee := computeFee(items, s.ShopSupplies)
		t.ShopSuppliesFee = &fee
		feeTotal = feeTotal.Add(fee)
	}
	if s.Hazmat.Enabled {
		fee := computeFee(items, s.Hazmat)
		t.HazmatFee = &fee
		feeTotal = feeTotal.Add(fee)
	}

	t.TaxAmount = t.Subtotal.Add(feeTotal).Mul(s.TaxRate)
	t.Total = t.Subtotal.Add(feeTotal).Add(t.TaxAmount)
	return t, nil
}

// computeFee evaluates one enabled rule against the items, applying the
// category restriction to the base and clamping to the cap.
func computeFee(items []LineItem, r FeeRule) decimal.Decimal {
	var labor, parts decimal.Decimal
	for _, item := range items {
		if !r.appliesTo(item.Category) {
			continue
		}
		if item.Type == enum.LineItemPart {
			parts = parts.Add(LineTotal(item))
		} else {
			labor = labor.Add(LineTotal(item))
		}
	}

	var fee decimal.Decimal
	switch r.Method {
	case enum.FeePercentOfLabor:
		fee = labor.Mul(r.Rate)
	case enum.FeePercentOfParts:
		fee = parts.Mul(r.Rate)
	case enum.FeePercentOfTotal:
		fee = labor.Add(parts).Mul(r.Rate)
	case enum.FeeFlat:
		fee = r.Rate
	}

	if r.Cap != nil && fee.GreaterThan(*r.Cap) {
		fee = *r.Cap
	}
	return fee
}

func (r FeeRule) appliesTo(category string) bool {
	if len(r.Categories) == 0 {
		return true
	}
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// RoundCents rounds an amount to the currency's minor unit, half up.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToCents converts an amount to integer cents, rounding half up.
func ToCents(d decimal.Decimal) int64 {
	return RoundCents(d).Mul(decimal.NewFromInt(100)).IntPart()
}

// FromCents converts integer cents to a decimal currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
