package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidStrategyType is returned for a strategy type the planner does
	// not know.
	ErrInvalidStrategyType = errors.New("unknown strategy type")
	// ErrInvalidStrategyOrder is returned when a custom strategy's priority
	// order is not an exact permutation of the active debt set. The planner
	// rejects rather than reconciles, so a stale order never silently plans
	// debts the user did not include.
	ErrInvalidStrategyOrder = errors.New("priority order does not match the debt set")
	// ErrInvalidBudget is returned when the extra budget, a balance, or an
	// interest rate is negative.
	ErrInvalidBudget = errors.New("budget, balances and rates must not be negative")
)

// StrategyType selects how debts are prioritized for payoff.
type StrategyType string

const (
	StrategySnowball  StrategyType = "snowball"  // smallest balance first
	StrategyAvalanche StrategyType = "avalanche" // highest rate first
	StrategyCustom    StrategyType = "custom"    // caller-supplied order
)

// DebtPaymentStrategy configures one planning request. It is constructed fresh
// per request; IsActive and Description are presentation metadata the planner
// ignores.
type DebtPaymentStrategy struct {
	Type               StrategyType    `json:"type"`
	PriorityOrder      []uuid.UUID     `json:"priorityOrder,omitempty"`
	MonthlyExtraBudget decimal.Decimal `json:"monthlyExtraBudget"`
	IsActive           bool            `json:"isActive"`
	Description        *string         `json:"description,omitempty"`
}

func (s *DebtPaymentStrategy) Validate() error {
	switch s.Type {
	case StrategySnowball, StrategyAvalanche:
	case StrategyCustom:
		if len(s.PriorityOrder) == 0 {
			return ErrInvalidStrategyOrder
		}
	default:
		return ErrInvalidStrategyType
	}
	if s.MonthlyExtraBudget.IsNegative() {
		return ErrInvalidBudget
	}
	return nil
}
