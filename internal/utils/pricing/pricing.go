package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillableDays returns the number of billable rental days for the closed
// interval [start, end]. A same-day rental still bills one full day.
func BillableDays(start, end time.Time) int64 {
	days := int64(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return days
}

// RentalAmount computes the total booking amount from the vehicle's daily
// rate. This is the authoritative amount; it is never taken from the caller.
func RentalAmount(start, end time.Time, dailyRate decimal.Decimal) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(BillableDays(start, end)))
}
