package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimatePayoff_ZeroInterest(t *testing.T) {
	// 1000 at 0%, paying 100/month = exactly 10 months, no interest
	result := EstimatePayoff(decimal.NewFromInt(1000), decimal.Zero, decimal.NewFromInt(100))

	if result.Months != 10 {
		t.Errorf("Expected 10 months, got %d", result.Months)
	}
	if !result.TotalInterest.IsZero() {
		t.Errorf("Expected zero interest, got %s", result.TotalInterest.String())
	}
	if result.Unpayable {
		t.Error("Expected payable estimate")
	}
}

func TestEstimatePayoff_ZeroInterestRoundsUp(t *testing.T) {
	// 100 at 0%, paying 30/month = 4 months (last one partial)
	result := EstimatePayoff(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(30))

	if result.Months != 4 {
		t.Errorf("Expected 4 months, got %d", result.Months)
	}
}

func TestEstimatePayoff_WithInterest(t *testing.T) {
	// 1000 at 12% APR (1%/month), paying 100/month:
	// months = ceil(-ln(1 - 1000*0.01/100) / ln(1.01)) = ceil(10.59) = 11
	// interest = 11*100 - 1000 = 100
	result := EstimatePayoff(decimal.NewFromInt(1000), decimal.NewFromInt(12), decimal.NewFromInt(100))

	if result.Months != 11 {
		t.Errorf("Expected 11 months, got %d", result.Months)
	}
	expected := decimal.NewFromInt(100)
	if !result.TotalInterest.Equal(expected) {
		t.Errorf("Expected interest %s, got %s", expected.String(), result.TotalInterest.String())
	}
}

func TestEstimatePayoff_ZeroBalance(t *testing.T) {
	result := EstimatePayoff(decimal.Zero, decimal.NewFromInt(20), decimal.NewFromInt(50))

	if result.Months != 0 {
		t.Errorf("Expected 0 months for zero balance, got %d", result.Months)
	}
	if result.Unpayable {
		t.Error("Zero balance must not be unpayable")
	}
}

func TestEstimatePayoff_ZeroPayment(t *testing.T) {
	result := EstimatePayoff(decimal.NewFromInt(1000), decimal.NewFromInt(12), decimal.Zero)

	if !result.Unpayable {
		t.Error("Expected unpayable sentinel for zero payment")
	}
	if result.Months != UnpayableMonths {
		t.Errorf("Expected %d months, got %d", UnpayableMonths, result.Months)
	}
}

func TestEstimatePayoff_PaymentBelowInterestAccrual(t *testing.T) {
	// 1000 at 12% accrues 10/month; a 10/month payment never amortizes
	result := EstimatePayoff(decimal.NewFromInt(1000), decimal.NewFromInt(12), decimal.NewFromInt(10))

	if !result.Unpayable {
		t.Error("Expected unpayable sentinel when payment does not cover interest")
	}
	if result.Months != UnpayableMonths {
		t.Errorf("Expected %d months, got %d", UnpayableMonths, result.Months)
	}
	if result.TotalInterest.IsNegative() {
		t.Errorf("Interest must never be negative, got %s", result.TotalInterest.String())
	}
}

func TestEstimatePayoff_MonotonicInPayment(t *testing.T) {
	// Raising the payment must never raise the month count
	balance := decimal.NewFromInt(5000)
	rate := decimal.NewFromFloat(18.5)

	prev := UnpayableMonths + 1
	for payment := 80; payment <= 1000; payment += 20 {
		result := EstimatePayoff(balance, rate, decimal.NewFromInt(int64(payment)))
		if result.Months > prev {
			t.Fatalf("Months increased from %d to %d at payment %d", prev, result.Months, payment)
		}
		prev = result.Months
	}
}
