package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PlanCache is an optional read-through cache for computed plans. Plans are
// derived data, so a miss or a cache failure is never an error.
type PlanCache interface {
	GetPlan(key string) (*domain.DebtPaymentPlan, bool)
	SetPlan(key string, plan *domain.DebtPaymentPlan) error
}

// PlanService builds debt payment plans from the workspace's current
// liability snapshot.
type PlanService struct {
	liabilityRepo domain.LiabilityRepository
	cache         PlanCache
}

// NewPlanService creates a new PlanService. cache may be nil.
func NewPlanService(liabilityRepo domain.LiabilityRepository, cache PlanCache) *PlanService {
	return &PlanService{
		liabilityRepo: liabilityRepo,
		cache:         cache,
	}
}

// BuildPlan loads the workspace's active liabilities and builds a payment
// plan for the given strategy.
func (s *PlanService) BuildPlan(workspaceID int32, strategy *domain.DebtPaymentStrategy) (*domain.DebtPaymentPlan, error) {
	debts, err := s.liabilityRepo.GetAllByWorkspace(workspaceID, false)
	if err != nil {
		return nil, err
	}

	key := planCacheKey(workspaceID, debts, strategy)
	if s.cache != nil {
		if plan, ok := s.cache.GetPlan(key); ok {
			return plan, nil
		}
	}

	plan, err := BuildPaymentPlan(debts, strategy)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPlan(key, plan); err != nil {
			log.Debug().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to cache plan")
		}
	}
	return plan, nil
}

// CompareStrategies loads the workspace's active liabilities and builds
// snowball and avalanche plans side by side for the same extra budget.
func (s *PlanService) CompareStrategies(workspaceID int32, extraBudget decimal.Decimal) (*domain.StrategyComparison, error) {
	debts, err := s.liabilityRepo.GetAllByWorkspace(workspaceID, false)
	if err != nil {
		return nil, err
	}
	return CompareStrategies(debts, extraBudget)
}

// BuildPaymentPlan computes a payment plan for the given debt snapshot and
// strategy. It never mutates its inputs.
//
// Each debt in priority order is costed at its own minimum payment plus the
// extra budget accumulated so far; after a debt is costed, its minimum rolls
// into the extra available to the next one. This is a first-order estimate
// that treats earlier debts in the order as already retired, not a
// month-by-month simulation: a debt's minimum becomes extra immediately, not
// on the calendar date the debt actually clears.
func BuildPaymentPlan(debts []*domain.Liability, strategy *domain.DebtPaymentStrategy) (*domain.DebtPaymentPlan, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}
	for _, d := range debts {
		if d.Amount.IsNegative() || d.AnnualRate().IsNegative() {
			return nil, domain.ErrInvalidBudget
		}
	}

	active := make([]*domain.Liability, 0, len(debts))
	for _, d := range debts {
		if !d.IsArchived {
			active = append(active, d)
		}
	}

	// No active debts is a valid state, not an error.
	if len(active) == 0 {
		return &domain.DebtPaymentPlan{
			Debts:                     []*domain.DebtPlanEntry{},
			MonthlyBudgetDistribution: []domain.BudgetAllocation{},
		}, nil
	}

	order, err := OrderDebts(active, strategy)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Liability, len(active))
	for _, d := range active {
		byID[d.ID] = d
	}

	// The extra budget goes to the first debt in the order that still
	// carries a balance.
	var focus *uuid.UUID
	for _, id := range order {
		if byID[id].Amount.GreaterThan(decimal.Zero) {
			focusID := id
			focus = &focusID
			break
		}
	}

	entries := make([]*domain.DebtPlanEntry, 0, len(order))
	distribution := make([]domain.BudgetAllocation, 0, len(order)+1)
	extra := strategy.MonthlyExtraBudget

	for i, id := range order {
		debt := byID[id]
		minimum := debt.MinimumPayment()

		// The accumulated extra concentrates on this one debt; spreading
		// it across all debts at once is what the strategy avoids.
		totalPayment := minimum.Add(extra)
		estimate := EstimatePayoff(debt.Amount, debt.AnnualRate(), totalPayment)

		entries = append(entries, &domain.DebtPlanEntry{
			Liability:      debt,
			MonthsToPayoff: estimate.Months,
			TotalInterest:  estimate.TotalInterest,
			Unpayable:      estimate.Unpayable,
			PayoffOrder:    i + 1,
		})

		distribution = append(distribution, domain.BudgetAllocation{
			LiabilityID: id,
			Amount:      minimum,
			Type:        domain.AllocationMinimum,
		})
		if focus != nil && id == *focus && strategy.MonthlyExtraBudget.GreaterThan(decimal.Zero) {
			distribution = append(distribution, domain.BudgetAllocation{
				LiabilityID: id,
				Amount:      strategy.MonthlyExtraBudget,
				Type:        domain.AllocationExtra,
			})
		}

		// Roll over: once this debt is handled at this cascade step, its
		// minimum accelerates the next one.
		extra = extra.Add(minimum)
	}

	return &domain.DebtPaymentPlan{
		Debts:                     entries,
		NextDebtToFocus:           focus,
		MonthlyBudgetDistribution: distribution,
	}, nil
}

// CompareStrategies builds snowball and avalanche plans from the same debt
// snapshot and extra budget. Each plan runs on an independent read of the
// inputs; neither run mutates the liabilities. The recommendation goes to the
// strategy with the lower projected interest, snowball winning ties.
func CompareStrategies(debts []*domain.Liability, extraBudget decimal.Decimal) (*domain.StrategyComparison, error) {
	snowball, err := BuildPaymentPlan(debts, &domain.DebtPaymentStrategy{
		Type:               domain.StrategySnowball,
		MonthlyExtraBudget: extraBudget,
	})
	if err != nil {
		return nil, err
	}

	avalanche, err := BuildPaymentPlan(debts, &domain.DebtPaymentStrategy{
		Type:               domain.StrategyAvalanche,
		MonthlyExtraBudget: extraBudget,
	})
	if err != nil {
		return nil, err
	}

	comparison := &domain.StrategyComparison{
		Snowball:    snowball,
		Avalanche:   avalanche,
		MonthsSaved: snowball.PayoffMonths() - avalanche.PayoffMonths(),
		Recommended: domain.StrategySnowball,
	}

	saved := snowball.TotalInterest().Sub(avalanche.TotalInterest())
	if saved.GreaterThan(decimal.Zero) {
		comparison.InterestSaved = saved
		comparison.Recommended = domain.StrategyAvalanche
	} else {
		comparison.InterestSaved = decimal.Zero
	}
	return comparison, nil
}

// planCacheKey fingerprints a planning request: workspace, strategy
// configuration, and the liability snapshot the plan would be built from. Any
// balance or rate change produces a new key, so stale plans simply expire.
func planCacheKey(workspaceID int32, debts []*domain.Liability, strategy *domain.DebtPaymentStrategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|%s|", workspaceID, strategy.Type, strategy.MonthlyExtraBudget.String())
	for _, id := range strategy.PriorityOrder {
		fmt.Fprintf(&b, "%s,", id)
	}
	b.WriteByte('|')
	for _, d := range debts {
		fmt.Fprintf(&b, "%s:%s:%s:%s;", d.ID, d.Amount.String(), d.AnnualRate().String(), d.MinimumPayment().String())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return "plan:" + hex.EncodeToString(sum[:16])
}
