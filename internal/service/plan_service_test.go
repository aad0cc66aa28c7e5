package service

import (
	"testing"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/debtwise/debtwise-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestBuildPaymentPlan_AvalancheCascade(t *testing.T) {
	// a: 2000 @ 20%, derived minimum 40 (2% of balance)
	// b: 500 @ 5%, derived minimum 25 (floor)
	a := &domain.Liability{ID: uuid.New(), Name: "card", Amount: decimal.NewFromInt(2000), InterestRate: decPtr(20)}
	b := &domain.Liability{ID: uuid.New(), Name: "loan", Amount: decimal.NewFromInt(500), InterestRate: decPtr(5)}

	plan, err := BuildPaymentPlan([]*domain.Liability{b, a}, &domain.DebtPaymentStrategy{
		Type:               domain.StrategyAvalanche,
		MonthlyExtraBudget: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, plan.Debts, 2)

	// Highest rate first
	assert.Equal(t, a.ID, plan.Debts[0].Liability.ID)
	assert.Equal(t, 1, plan.Debts[0].PayoffOrder)
	assert.Equal(t, b.ID, plan.Debts[1].Liability.ID)
	assert.Equal(t, 2, plan.Debts[1].PayoffOrder)

	require.NotNil(t, plan.NextDebtToFocus)
	assert.Equal(t, a.ID, *plan.NextDebtToFocus)

	// Distribution: a gets its minimum plus the whole extra budget, b only
	// its minimum
	require.Len(t, plan.MonthlyBudgetDistribution, 3)
	assert.Equal(t, a.ID, plan.MonthlyBudgetDistribution[0].LiabilityID)
	assert.Equal(t, domain.AllocationMinimum, plan.MonthlyBudgetDistribution[0].Type)
	assert.True(t, plan.MonthlyBudgetDistribution[0].Amount.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, a.ID, plan.MonthlyBudgetDistribution[1].LiabilityID)
	assert.Equal(t, domain.AllocationExtra, plan.MonthlyBudgetDistribution[1].Type)
	assert.True(t, plan.MonthlyBudgetDistribution[1].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, b.ID, plan.MonthlyBudgetDistribution[2].LiabilityID)
	assert.Equal(t, domain.AllocationMinimum, plan.MonthlyBudgetDistribution[2].Type)
	assert.True(t, plan.MonthlyBudgetDistribution[2].Amount.Equal(decimal.NewFromInt(25)))

	for _, e := range plan.Debts {
		assert.False(t, e.Unpayable)
		assert.Greater(t, e.MonthsToPayoff, 0)
	}
}

func TestBuildPaymentPlan_BudgetConservation(t *testing.T) {
	debts := []*domain.Liability{
		{ID: uuid.New(), Name: "a", Amount: decimal.NewFromInt(3200), InterestRate: decPtr(19.99), MonthlyPayment: decPtr(90)},
		{ID: uuid.New(), Name: "b", Amount: decimal.NewFromInt(750), InterestRate: decPtr(6.5)},
		{ID: uuid.New(), Name: "c", Amount: decimal.NewFromInt(12000), InterestRate: decPtr(4.2), MonthlyPayment: decPtr(250)},
	}
	extra := decimal.NewFromInt(175)

	plan, err := BuildPaymentPlan(debts, &domain.DebtPaymentStrategy{
		Type:               domain.StrategySnowball,
		MonthlyExtraBudget: extra,
	})
	require.NoError(t, err)

	distributed := decimal.Zero
	for _, alloc := range plan.MonthlyBudgetDistribution {
		distributed = distributed.Add(alloc.Amount)
	}

	expected := extra
	for _, d := range debts {
		expected = expected.Add(d.MinimumPayment())
	}
	assert.True(t, distributed.Equal(expected), "distributed %s, expected %s", distributed, expected)
}

func TestBuildPaymentPlan_NoDebts(t *testing.T) {
	plan, err := BuildPaymentPlan(nil, &domain.DebtPaymentStrategy{Type: domain.StrategySnowball})
	require.NoError(t, err)

	assert.Empty(t, plan.Debts)
	assert.Empty(t, plan.MonthlyBudgetDistribution)
	assert.Nil(t, plan.NextDebtToFocus)
	assert.True(t, plan.TotalInterest().IsZero())
	assert.Equal(t, 0, plan.PayoffMonths())
}

func TestBuildPaymentPlan_ZeroExtraBudget(t *testing.T) {
	a := &domain.Liability{ID: uuid.New(), Name: "a", Amount: decimal.NewFromInt(1000), InterestRate: decPtr(12), MonthlyPayment: decPtr(100)}

	plan, err := BuildPaymentPlan([]*domain.Liability{a}, &domain.DebtPaymentStrategy{Type: domain.StrategySnowball})
	require.NoError(t, err)

	// Minimums only: no extra allocation, but the focus debt is still named
	require.Len(t, plan.MonthlyBudgetDistribution, 1)
	assert.Equal(t, domain.AllocationMinimum, plan.MonthlyBudgetDistribution[0].Type)
	require.NotNil(t, plan.NextDebtToFocus)
	assert.Equal(t, a.ID, *plan.NextDebtToFocus)
	assert.Equal(t, 11, plan.Debts[0].MonthsToPayoff)
}

func TestBuildPaymentPlan_NegativeBudgetRejected(t *testing.T) {
	a := &domain.Liability{ID: uuid.New(), Name: "a", Amount: decimal.NewFromInt(100)}

	_, err := BuildPaymentPlan([]*domain.Liability{a}, &domain.DebtPaymentStrategy{
		Type:               domain.StrategySnowball,
		MonthlyExtraBudget: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBudget)
}

func TestBuildPaymentPlan_UnpayableDebtFlagged(t *testing.T) {
	// Second in order, so it gets no extra: 10000 @ 24% accrues 200/month
	// against a 100 minimum
	small := &domain.Liability{ID: uuid.New(), Name: "small", Amount: decimal.NewFromInt(100), MonthlyPayment: decPtr(50)}
	stuck := &domain.Liability{ID: uuid.New(), Name: "stuck", Amount: decimal.NewFromInt(10000), InterestRate: decPtr(24), MonthlyPayment: decPtr(100)}

	plan, err := BuildPaymentPlan([]*domain.Liability{stuck, small}, &domain.DebtPaymentStrategy{Type: domain.StrategySnowball})
	require.NoError(t, err)
	require.Len(t, plan.Debts, 2)

	entry := plan.Debts[1]
	assert.Equal(t, stuck.ID, entry.Liability.ID)
	assert.True(t, entry.Unpayable)
	assert.Equal(t, UnpayableMonths, entry.MonthsToPayoff)
	assert.True(t, entry.TotalInterest.IsZero())
}

func TestBuildPaymentPlan_FocusSkipsZeroBalance(t *testing.T) {
	cleared := &domain.Liability{ID: uuid.New(), Name: "cleared", Amount: decimal.Zero}
	open := &domain.Liability{ID: uuid.New(), Name: "open", Amount: decimal.NewFromInt(400), InterestRate: decPtr(10)}

	plan, err := BuildPaymentPlan([]*domain.Liability{open, cleared}, &domain.DebtPaymentStrategy{
		Type:               domain.StrategySnowball,
		MonthlyExtraBudget: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// Snowball puts the zero-balance debt first, but the extra budget must
	// land on the first debt that still owes anything
	require.NotNil(t, plan.NextDebtToFocus)
	assert.Equal(t, open.ID, *plan.NextDebtToFocus)
	assert.Equal(t, 0, plan.Debts[0].MonthsToPayoff)
}

func TestCompareStrategies_RecommendsLowerInterest(t *testing.T) {
	// x: 1000 @ 24% with a 50 minimum, y: 200 interest-free with a 25 minimum.
	// Snowball clears y first and pays 200 interest on x; avalanche attacks x
	// first and pays 125.
	x := &domain.Liability{ID: uuid.New(), Name: "x", Amount: decimal.NewFromInt(1000), InterestRate: decPtr(24), MonthlyPayment: decPtr(50)}
	y := &domain.Liability{ID: uuid.New(), Name: "y", Amount: decimal.NewFromInt(200), MonthlyPayment: decPtr(25)}

	comparison, err := CompareStrategies([]*domain.Liability{x, y}, decimal.NewFromInt(75))
	require.NoError(t, err)

	assert.True(t, comparison.Snowball.TotalInterest().Equal(decimal.NewFromInt(200)),
		"snowball interest %s", comparison.Snowball.TotalInterest())
	assert.True(t, comparison.Avalanche.TotalInterest().Equal(decimal.NewFromInt(125)),
		"avalanche interest %s", comparison.Avalanche.TotalInterest())
	assert.True(t, comparison.InterestSaved.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, domain.StrategyAvalanche, comparison.Recommended)

	// Avalanche takes a month longer here; the tradeoff is reported as-is
	assert.Equal(t, 8, comparison.Snowball.PayoffMonths())
	assert.Equal(t, 9, comparison.Avalanche.PayoffMonths())
	assert.Equal(t, -1, comparison.MonthsSaved)
}

func TestCompareStrategies_TieGoesToSnowball(t *testing.T) {
	// Interest-free debts: both strategies project zero interest
	a := &domain.Liability{ID: uuid.New(), Name: "a", Amount: decimal.NewFromInt(300), MonthlyPayment: decPtr(50)}
	b := &domain.Liability{ID: uuid.New(), Name: "b", Amount: decimal.NewFromInt(600), MonthlyPayment: decPtr(60)}

	comparison, err := CompareStrategies([]*domain.Liability{a, b}, decimal.Zero)
	require.NoError(t, err)

	assert.True(t, comparison.InterestSaved.IsZero())
	assert.Equal(t, domain.StrategySnowball, comparison.Recommended)
}

func TestPlanService_CachesByFingerprint(t *testing.T) {
	liabilityRepo := testutil.NewMockLiabilityRepository()
	planCache := testutil.NewMockPlanCache()
	planService := NewPlanService(liabilityRepo, planCache)

	liabilityRepo.AddLiability(&domain.Liability{
		ID:           uuid.New(),
		WorkspaceID:  1,
		Name:         "card",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decPtr(18),
	})

	strategy := &domain.DebtPaymentStrategy{
		Type:               domain.StrategySnowball,
		MonthlyExtraBudget: decimal.NewFromInt(50),
	}

	first, err := planService.BuildPlan(1, strategy)
	require.NoError(t, err)
	assert.Equal(t, 0, planCache.Hits)
	assert.Equal(t, 1, planCache.Sets)

	second, err := planService.BuildPlan(1, strategy)
	require.NoError(t, err)
	assert.Equal(t, 1, planCache.Hits)
	assert.Equal(t, 1, planCache.Sets)
	assert.Equal(t, first.PayoffMonths(), second.PayoffMonths())

	// A different budget is a different request
	_, err = planService.BuildPlan(1, &domain.DebtPaymentStrategy{
		Type:               domain.StrategySnowball,
		MonthlyExtraBudget: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, planCache.Hits)
	assert.Equal(t, 2, planCache.Sets)
}

func TestPlanService_BalanceChangeInvalidatesKey(t *testing.T) {
	liabilityRepo := testutil.NewMockLiabilityRepository()
	planCache := testutil.NewMockPlanCache()
	planService := NewPlanService(liabilityRepo, planCache)

	debt := &domain.Liability{
		ID:           uuid.New(),
		WorkspaceID:  1,
		Name:         "card",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decPtr(18),
	}
	liabilityRepo.AddLiability(debt)

	strategy := &domain.DebtPaymentStrategy{Type: domain.StrategySnowball}

	_, err := planService.BuildPlan(1, strategy)
	require.NoError(t, err)

	debt.Amount = decimal.NewFromInt(900)

	_, err = planService.BuildPlan(1, strategy)
	require.NoError(t, err)
	assert.Equal(t, 0, planCache.Hits)
	assert.Equal(t, 2, planCache.Sets)
}

func TestPlanService_WorksWithoutCache(t *testing.T) {
	liabilityRepo := testutil.NewMockLiabilityRepository()
	planService := NewPlanService(liabilityRepo, nil)

	liabilityRepo.AddLiability(&domain.Liability{
		ID:          uuid.New(),
		WorkspaceID: 1,
		Name:        "card",
		Amount:      decimal.NewFromInt(500),
	})

	plan, err := planService.BuildPlan(1, &domain.DebtPaymentStrategy{Type: domain.StrategyAvalanche})
	require.NoError(t, err)
	assert.Len(t, plan.Debts, 1)
}
