package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// UnpayableMonths is the month count reported when a payment never amortizes
// the debt. It is a display cap, not a mathematical truth; the Unpayable flag
// is the authoritative signal.
const UnpayableMonths = 999

// PayoffEstimate is the projected payoff for a single debt at a fixed total
// monthly payment.
type PayoffEstimate struct {
	Months        int
	TotalInterest decimal.Decimal
	Unpayable     bool
}

func unpayableEstimate() PayoffEstimate {
	return PayoffEstimate{
		Months:        UnpayableMonths,
		TotalInterest: decimal.Zero,
		Unpayable:     true,
	}
}

// EstimatePayoff estimates months to payoff and total interest for one debt
// given its balance, nominal annual percentage rate, and total monthly
// payment.
//
// Interest-free debts divide out exactly. Compounding debts use the standard
// closed-form amortization formula; the log arithmetic runs on float64 and the
// monetary result switches back to decimal for rounding. When the payment is
// zero or does not cover the monthly interest accrual, the debt never
// amortizes and the unpayable sentinel is returned instead of a negative or
// NaN month count.
func EstimatePayoff(balance, annualRate, monthlyPayment decimal.Decimal) PayoffEstimate {
	if balance.LessThanOrEqual(decimal.Zero) {
		return PayoffEstimate{Months: 0, TotalInterest: decimal.Zero}
	}
	if monthlyPayment.LessThanOrEqual(decimal.Zero) {
		return unpayableEstimate()
	}

	if annualRate.LessThanOrEqual(decimal.Zero) {
		months := int(balance.Div(monthlyPayment).Ceil().IntPart())
		return PayoffEstimate{Months: months, TotalInterest: decimal.Zero}
	}

	r := annualRate.InexactFloat64() / 100 / 12
	b := balance.InexactFloat64()
	p := monthlyPayment.InexactFloat64()

	// Payment must exceed the interest accruing each month or the balance
	// only grows.
	if p <= b*r {
		return unpayableEstimate()
	}

	months := int(math.Ceil(-math.Log(1-b*r/p) / math.Log(1+r)))
	if months < 1 {
		months = 1
	}

	interest := decimal.NewFromFloat(float64(months)*p - b).Round(2)
	if interest.IsNegative() {
		interest = decimal.Zero
	}
	return PayoffEstimate{Months: months, TotalInterest: interest}
}
