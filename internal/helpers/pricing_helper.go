package helpers

import (
	"github.com/shopspring/decimal"
)

// ApplyDiscount reduces price by a whole-percentage discount. Discounts
// outside [0, 100] are clamped so a misconfigured coupon can never charge
// more than the tier price or produce a negative amount. The result is
// rounded to cents.
func ApplyDiscount(price decimal.Decimal, discountPercent int) decimal.Decimal {
	if discountPercent <= 0 {
		return price.Round(2)
	}
	if discountPercent >= 100 {
		return decimal.Zero
	}

	factor := decimal.NewFromInt(int64(100 - discountPercent)).Div(decimal.NewFromInt(100))
	final := price.Mul(factor).Round(2)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
