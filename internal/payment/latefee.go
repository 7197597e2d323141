package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payments made after this day of the month carry a late fee.
const LateCutoffDay = 5

// DefaultLateFeePercentage applies when a late payment comes in without an
// explicit percentage.
const DefaultLateFeePercentage = 15.0

// IsLate reports whether a payment on the given date is past the monthly
// cutoff.
func IsLate(paymentDate time.Time) bool {
	return paymentDate.Day() > LateCutoffDay
}

// LateFee computes the fee for a late payment, rounded to 2 decimal places.
func LateFee(amount, percentage float64) float64 {
	fee, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(percentage)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return fee
}

// NextPaymentDate advances a payment date by one calendar month, preserving
// the day of month where the target month has it.
func NextPaymentDate(paymentDate time.Time) time.Time {
	return paymentDate.AddDate(0, 1, 0)
}

// Compute fills in the derived fields of a payment from its amount and date.
// suppliedPct, when non-nil, overrides the default late fee percentage; it is
// ignored entirely for on-time payments.
func Compute(p *Payment, suppliedPct *float64) {
	p.PeriodStart = p.PaymentDate
	p.NextPayment = NextPaymentDate(p.PaymentDate)
	p.IsLate = IsLate(p.PaymentDate)

	if p.IsLate {
		p.LateFeePercentage = DefaultLateFeePercentage
		if suppliedPct != nil {
			p.LateFeePercentage = *suppliedPct
		}
		p.LateFeeAmount = LateFee(p.Amount, p.LateFeePercentage)
	} else {
		p.LateFeePercentage = 0
		p.LateFeeAmount = 0
	}
	p.TotalAmount = p.Amount + p.LateFeeAmount
}
