package domain

import "github.com/shopspring/decimal"

// FreeCommuteKm is the part of each leg a technician drives uncompensated.
const FreeCommuteKm = 40

var (
	freeCommute     = decimal.NewFromInt(FreeCommuteKm)
	metersPerKm     = decimal.NewFromInt(1000)
	kmDecimalPlaces = int32(2)
)

// CompensatedKm returns the kilometers to compensate for one day:
// the distance beyond the free commute on each leg, summed and rounded
// to two decimals.
//
// An unknown leg contributes nothing. This can under-report a day when the
// distance service is unavailable; the entry still records which leg failed.
func CompensatedKm(morning, evening Leg) float64 {
	total := compensable(morning).Add(compensable(evening))
	return total.Round(kmDecimalPlaces).InexactFloat64()
}

func compensable(l Leg) decimal.Decimal {
	over := decimal.NewFromFloat(l.KmOrZero()).Sub(freeCommute)
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}

// MetersToKm converts a provider distance to kilometers rounded to two decimals.
func MetersToKm(meters int) float64 {
	return decimal.NewFromInt(int64(meters)).
		Div(metersPerKm).
		Round(kmDecimalPlaces).
		InexactFloat64()
}

// SumKm adds kilometer figures without accumulating float error.
func SumKm(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Round(kmDecimalPlaces).InexactFloat64()
}
