package service

import (
	"sort"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
)

// OrderDebts produces the payoff priority order for a debt set under the
// given strategy. Archived liabilities are excluded before ordering; the
// input slice is never reordered in place.
//
// Snowball sorts by ascending balance, ties keeping input order (the quick-win
// ordering; ties are immaterial to the outcome). Avalanche sorts by descending
// rate with ascending balance as the canonical tie-break, so equal-rate debts
// always resolve the same way. Custom returns the strategy's own order after
// checking it is an exact permutation of the active debt id set.
func OrderDebts(debts []*domain.Liability, strategy *domain.DebtPaymentStrategy) ([]uuid.UUID, error) {
	sorted := make([]*domain.Liability, 0, len(debts))
	for _, d := range debts {
		if !d.IsArchived {
			sorted = append(sorted, d)
		}
	}

	switch strategy.Type {
	case domain.StrategySnowball:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Amount.LessThan(sorted[j].Amount)
		})
	case domain.StrategyAvalanche:
		sort.SliceStable(sorted, func(i, j int) bool {
			ri, rj := sorted[i].AnnualRate(), sorted[j].AnnualRate()
			if ri.Equal(rj) {
				return sorted[i].Amount.LessThan(sorted[j].Amount)
			}
			return ri.GreaterThan(rj)
		})
	case domain.StrategyCustom:
		return customOrder(sorted, strategy.PriorityOrder)
	default:
		return nil, domain.ErrInvalidStrategyType
	}

	order := make([]uuid.UUID, len(sorted))
	for i, d := range sorted {
		order[i] = d.ID
	}
	return order, nil
}

// customOrder validates that the supplied order is an exact permutation of the
// debt id set. Missing, duplicate, or unknown ids are rejected.
func customOrder(debts []*domain.Liability, priority []uuid.UUID) ([]uuid.UUID, error) {
	if len(priority) != len(debts) {
		return nil, domain.ErrInvalidStrategyOrder
	}

	known := make(map[uuid.UUID]bool, len(debts))
	for _, d := range debts {
		known[d.ID] = true
	}

	seen := make(map[uuid.UUID]bool, len(priority))
	order := make([]uuid.UUID, len(priority))
	for i, id := range priority {
		if !known[id] || seen[id] {
			return nil, domain.ErrInvalidStrategyOrder
		}
		seen[id] = true
		order[i] = id
	}
	return order, nil
}
