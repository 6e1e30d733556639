package domain

import "github.com/shopspring/decimal"

// PriceScale is the number of minor-unit digits prices are rounded to.
const PriceScale int32 = 2

// SeatPrice is the price of one seat for a show: base price times the seat's
// multiplier, rounded half-up to the currency's minor unit.
func SeatPrice(basePrice, multiplier decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// positive amounts prices are restricted to.
	return basePrice.Mul(multiplier).Round(PriceScale)
}

func TotalPrice(prices ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, p := range prices {
		total = total.Add(p)
	}

	return total
}
