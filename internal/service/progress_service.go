package service

import (
	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProgressService reports payoff progress for individual liabilities.
type ProgressService struct {
	liabilityRepo domain.LiabilityRepository
	paymentRepo   domain.DebtPaymentRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(liabilityRepo domain.LiabilityRepository, paymentRepo domain.DebtPaymentRepository) *ProgressService {
	return &ProgressService{
		liabilityRepo: liabilityRepo,
		paymentRepo:   paymentRepo,
	}
}

// GetProgress loads a liability and its payment history and computes progress.
func (s *ProgressService) GetProgress(workspaceID int32, liabilityID uuid.UUID) (*domain.DebtProgress, error) {
	liability, err := s.liabilityRepo.GetByID(workspaceID, liabilityID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.GetByLiabilityID(liabilityID)
	if err != nil {
		return nil, err
	}
	return CalculateProgress(liability, payments), nil
}

// CalculateProgress computes progress toward clearing a liability from its
// recorded payment history.
//
// TotalPaid is gross cash paid, interest-only payments included; principal
// reduction is tracked separately on the liability's own balance. Remaining
// amount never goes negative and the percentage is clamped to [0, 100]. A
// zero baseline reports 0% rather than dividing by zero.
func CalculateProgress(liability *domain.Liability, payments []*domain.DebtPayment) *domain.DebtProgress {
	totalPaid := decimal.Zero
	for _, p := range payments {
		if p.LiabilityID != liability.ID {
			continue
		}
		totalPaid = totalPaid.Add(p.Amount)
	}

	baseline := liability.Baseline()

	remaining := baseline.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percentage := 0.0
	if baseline.GreaterThan(decimal.Zero) {
		percentage = totalPaid.Div(baseline).InexactFloat64() * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	return &domain.DebtProgress{
		TotalPaid:          totalPaid,
		RemainingAmount:    remaining,
		ProgressPercentage: percentage,
		OriginalAmount:     baseline,
	}
}
