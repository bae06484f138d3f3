package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tomdro61/shop-pilot-sub001/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func labor(qty, rate string) LineItem {
	return LineItem{Type: enum.LineItemLabor, Quantity: dec(qty), UnitCost: dec(rate)}
}

func part(qty, price string) LineItem {
	return LineItem{Type: enum.LineItemPart, Quantity: dec(qty), UnitCost: dec(price)}
}

func TestLineTotal_ExactDecimal(t *testing.T) {
	assertDecimal(t, "lineTotal", LineTotal(labor("1.5", "120")), dec("180"))
	assertDecimal(t, "lineTotal", LineTotal(part("3", "19.99")), dec("59.97"))
	// No premature rounding: 0.1 * 0.1 stays exact.
	assertDecimal(t, "lineTotal", LineTotal(part("0.1", "0.1")), dec("0.01"))
}

func TestComputeTotals_NoFeesNoTax(t *testing.T) {
	items := []LineItem{labor("2", "100"), part("1", "50")}
	totals, err := ComputeTotals(items, Settings{})
	if err != nil {
		t.Fatal(err)
	}

	assertDecimal(t, "laborSubtotal", totals.LaborSubtotal, dec("200"))
	assertDecimal(t, "partsSubtotal", totals.PartsSubtotal, dec("50"))
	assertDecimal(t, "subtotal", totals.Subtotal, dec("250"))
	assertDecimal(t, "total", totals.Total, dec("250"))
	if totals.ShopSuppliesFee != nil || totals.HazmatFee != nil {
		t.Fatal("disabled fees must be absent, not zero")
	}
}

func TestComputeTotals_PercentOfTotalWithCap(t *testing.T) {
	// Labor $200, parts $100, shop supplies 5% of total capped at $15:
	// min(0.05*300, 15) = 15. Tax 6.25% on (300 + 15).
	items := []LineItem{labor("2", "100"), part("2", "50")}
	settings := Settings{
		TaxRate: dec("0.0625"),
		ShopSupplies: FeeRule{
			Enabled: true,
			Method:  enum.FeePercentOfTotal,
			Rate:    dec("0.05"),
			Cap:     decPtr("15"),
		},
	}

	totals, err := ComputeTotals(items, settings)
	if err != nil {
		t.Fatal(err)
	}

	if totals.ShopSuppliesFee == nil {
		t.Fatal("shop supplies fee missing")
	}
	assertDecimal(t, "shopSuppliesFee", *totals.ShopSuppliesFee, dec("15"))
	assertDecimal(t, "taxAmount", totals.TaxAmount, dec("19.6875"))
	assertDecimal(t, "total", totals.Total, dec("334.6875"))
	assertDecimal(t, "rounded total", RoundCents(totals.Total), dec("334.69"))
}

func TestComputeTotals_FeeMethods(t *testing.T) {
	items := []LineItem{labor("2", "100"), part("2", "50")} // labor 200, parts 100

	tests := []struct {
		name   string
		method enum.FeeMethod
		rate   string
		want   string
	}{
		{"percent_of_labor", enum.FeePercentOfLabor, "0.10", "20"},
		{"percent_of_parts", enum.FeePercentOfParts, "0.10", "10"},
		{"percent_of_total", enum.FeePercentOfTotal, "0.10", "30"},
		{"flat", enum.FeeFlat, "12.50", "12.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := Settings{
				Hazmat: FeeRule{Enabled: true, Method: tt.method, Rate: dec(tt.rate)},
			}
			totals, err := ComputeTotals(items, settings)
			if err != nil {
				t.Fatal(err)
			}
			if totals.HazmatFee == nil {
				t.Fatal("hazmat fee missing")
			}
			assertDecimal(t, "hazmatFee", *totals.HazmatFee, dec(tt.want))
		})
	}
}

func TestComputeTotals_CapClamping(t *testing.T) {
	items := []LineItem{labor("1", "1000")}
	rule := FeeRule{Enabled: true, Method: enum.FeePercentOfLabor, Rate: dec("0.10")}

	// Cap above the computed fee changes nothing.
	rule.Cap = decPtr("500")
	totals, err := ComputeTotals(items, Settings{ShopSupplies: rule})
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "uncapped fee", *totals.ShopSuppliesFee, dec("100"))

	// Cap below the computed fee clamps to exactly the cap.
	rule.Cap = decPtr("25")
	totals, err = ComputeTotals(items, Settings{ShopSupplies: rule})
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "capped fee", *totals.ShopSuppliesFee, dec("25"))
}

func TestComputeTotals_CategoryRestrictedBase(t *testing.T) {
	items := []LineItem{
		{Type: enum.LineItemPart, Category: "fluids", Quantity: dec("1"), UnitCost: dec("40")},
		{Type: enum.LineItemPart, Category: "brakes", Quantity: dec("1"), UnitCost: dec("60")},
	}
	settings := Settings{
		TaxRate: dec("0.10"),
		Hazmat: FeeRule{
			Enabled:    true,
			Method:     enum.FeePercentOfParts,
			Rate:       dec("0.50"),
			Categories: []string{"fluids"},
		},
	}

	totals, err := ComputeTotals(items, settings)
	if err != nil {
		t.Fatal(err)
	}

	// Fee base is only the fluids item, but the excluded brakes item still
	// counts toward the subtotal and the tax base.
	assertDecimal(t, "hazmatFee", *totals.HazmatFee, dec("20"))
	assertDecimal(t, "subtotal", totals.Subtotal, dec("100"))
	assertDecimal(t, "taxAmount", totals.TaxAmount, dec("12"))
	assertDecimal(t, "total", totals.Total, dec("132"))
}

func TestComputeTotals_FeesAreTaxable(t *testing.T) {
	items := []LineItem{labor("1", "100")}
	settings := Settings{
		TaxRate:      dec("0.10"),
		ShopSupplies: FeeRule{Enabled: true, Method: enum.FeeFlat, Rate: dec("10")},
		Hazmat:       FeeRule{Enabled: true, Method: enum.FeeFlat, Rate: dec("5")},
	}

	totals, err := ComputeTotals(items, settings)
	if err != nil {
		t.Fatal(err)
	}

	// Tax applies to subtotal + both fees.
	assertDecimal(t, "taxAmount", totals.TaxAmount, dec("11.5"))
	assertDecimal(t, "total", totals.Total, dec("126.5"))
}

func TestComputeTotals_DisabledFeeContributesNothing(t *testing.T) {
	items := []LineItem{labor("1", "100")}
	settings := Settings{
		// Huge rate and cap, but disabled.
		ShopSupplies: FeeRule{Enabled: false, Method: enum.FeePercentOfTotal, Rate: dec("9"), Cap: decPtr("9999")},
	}

	totals, err := ComputeTotals(items, settings)
	if err != nil {
		t.Fatal(err)
	}
	if totals.ShopSuppliesFee != nil {
		t.Fatal("disabled fee must not appear")
	}
	assertDecimal(t, "total", totals.Total, dec("100"))
}

func TestComputeTotals_RejectsNegativeConfiguration(t *testing.T) {
	items := []LineItem{labor("1", "100")}

	_, err := ComputeTotals(items, Settings{
		ShopSupplies: FeeRule{Enabled: true, Method: enum.FeeFlat, Rate: dec("-1")},
	})
	if !errors.Is(err, ErrNegativeRate) {
		t.Fatalf("err = %v, want ErrNegativeRate", err)
	}

	_, err = ComputeTotals(items, Settings{
		Hazmat: FeeRule{Method: enum.FeeFlat, Rate: dec("1"), Cap: decPtr("-5")},
	})
	if !errors.Is(err, ErrNegativeCap) {
		t.Fatalf("err = %v, want ErrNegativeCap", err)
	}

	_, err = ComputeTotals(items, Settings{TaxRate: dec("1.5")})
	if !errors.Is(err, ErrTaxRateRange) {
		t.Fatalf("err = %v, want ErrTaxRateRange", err)
	}

	_, err = ComputeTotals(items, Settings{
		ShopSupplies: FeeRule{
			Enabled:    true,
			Method:     enum.FeePercentOfParts,
			Rate:       dec("0.05"),
			Categories: []string{"fluids", "fluids"},
		},
	})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("err = %v, want ErrDuplicateCategory", err)
	}
}

func TestComputeTotals_PartsCostBasisExcludedFromTotal(t *testing.T) {
	items := []LineItem{
		{Type: enum.LineItemPart, Quantity: dec("1"), UnitCost: dec("100"), Cost: dec("60")},
	}
	totals, err := ComputeTotals(items, Settings{})
	if err != nil {
		t.Fatal(err)
	}
	assertDecimal(t, "total", totals.Total, dec("100"))
	assertDecimal(t, "partsCost", totals.PartsCost, dec("60"))
}

func TestRounding(t *testing.T) {
	assertDecimal(t, "half up", RoundCents(dec("1.005")), dec("1.01"))
	assertDecimal(t, "down", RoundCents(dec("1.004")), dec("1.00"))
	if got := ToCents(dec("334.6875")); got != 33469 {
		t.Fatalf("ToCents = %d, want 33469", got)
	}
	assertDecimal(t, "fromCents", FromCents(33469), dec("334.69"))
}
