package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationType distinguishes contractual minimums from the discretionary
// extra budget in a plan's monthly distribution.
type AllocationType string

const (
	AllocationMinimum AllocationType = "minimum"
	AllocationExtra   AllocationType = "extra"
)

// BudgetAllocation is one line of a plan's monthly budget distribution.
type BudgetAllocation struct {
	LiabilityID uuid.UUID       `json:"liabilityId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        AllocationType  `json:"type"`
}

// DebtPlanEntry is the projected payoff for one liability within a plan.
type DebtPlanEntry struct {
	Liability      *Liability      `json:"liability"`
	MonthsToPayoff int             `json:"monthsToPayoff"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	Unpayable      bool            `json:"unpayable"`
	PayoffOrder    int             `json:"payoffOrder"`
}

// DebtPaymentPlan is the computed output of a planning request. It is derived,
// disposable data: always rebuilt whole from the current liability snapshot,
// never partially mutated, and never a source of truth.
type DebtPaymentPlan struct {
	Debts                     []*DebtPlanEntry   `json:"debts"`
	NextDebtToFocus           *uuid.UUID         `json:"nextDebtToFocus"`
	MonthlyBudgetDistribution []BudgetAllocation `json:"monthlyBudgetDistribution"`
}

// TotalInterest sums the projected interest across all debts in the plan.
// Unpayable entries contribute nothing; their interest is not meaningful.
func (p *DebtPaymentPlan) TotalInterest() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.Debts {
		total = total.Add(e.TotalInterest)
	}
	return total
}

// PayoffMonths returns the longest projected payoff across the plan's debts.
func (p *DebtPaymentPlan) PayoffMonths() int {
	months := 0
	for _, e := range p.Debts {
		if e.MonthsToPayoff > months {
			months = e.MonthsToPayoff
		}
	}
	return months
}

// StrategyComparison holds snowball and avalanche plans built from the same
// debt snapshot and extra budget, side by side.
type StrategyComparison struct {
	Snowball      *DebtPaymentPlan `json:"snowball"`
	Avalanche     *DebtPaymentPlan `json:"avalanche"`
	InterestSaved decimal.Decimal  `json:"interestSaved"`
	MonthsSaved   int              `json:"monthsSaved"`
	Recommended   StrategyType     `json:"recommended"`
}

// DebtProgress reports progress toward clearing one liability, measured as
// gross cash paid against the original amount.
type DebtProgress struct {
	TotalPaid          decimal.Decimal `json:"totalPaid"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	ProgressPercentage float64         `json:"progressPercentage"`
	OriginalAmount     decimal.Decimal `json:"originalAmount"`
}
