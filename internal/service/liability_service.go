package service

import (
	"strings"
	"time"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LiabilityService handles liability business logic
type LiabilityService struct {
	liabilityRepo domain.LiabilityRepository
}

// NewLiabilityService creates a new LiabilityService
func NewLiabilityService(liabilityRepo domain.LiabilityRepository) *LiabilityService {
	return &LiabilityService{liabilityRepo: liabilityRepo}
}

// CreateLiabilityInput contains input for creating a liability
type CreateLiabilityInput struct {
	Name           string
	Type           domain.LiabilityType
	Amount         decimal.Decimal
	OriginalAmount *decimal.Decimal // Defaults to Amount when nil
	InterestRate   *decimal.Decimal
	MonthlyPayment *decimal.Decimal
}

// CreateLiability creates a new liability. The original amount defaults to
// the opening balance so progress has a baseline from day one.
func (s *LiabilityService) CreateLiability(workspaceID int32, input CreateLiabilityInput) (*domain.Liability, error) {
	originalAmount := input.Amount
	if input.OriginalAmount != nil {
		originalAmount = *input.OriginalAmount
	}

	liability := &domain.Liability{
		WorkspaceID:    workspaceID,
		Name:           strings.TrimSpace(input.Name),
		Type:           input.Type,
		Amount:         input.Amount,
		OriginalAmount: originalAmount,
		InterestRate:   input.InterestRate,
		MonthlyPayment: input.MonthlyPayment,
	}
	if err := liability.Validate(); err != nil {
		return nil, err
	}
	if liability.OriginalAmount.IsNegative() {
		return nil, domain.ErrLiabilityAmountNegative
	}

	return s.liabilityRepo.Create(liability)
}

// GetLiabilities retrieves liabilities for a workspace, optionally including
// archived ones. Archived liabilities are excluded from active totals and
// planning.
func (s *LiabilityService) GetLiabilities(workspaceID int32, includeArchived bool) ([]*domain.Liability, error) {
	return s.liabilityRepo.GetAllByWorkspace(workspaceID, includeArchived)
}

// GetLiabilityByID retrieves a liability by ID within a workspace
func (s *LiabilityService) GetLiabilityByID(workspaceID int32, id uuid.UUID) (*domain.Liability, error) {
	return s.liabilityRepo.GetByID(workspaceID, id)
}

// UpdateLiabilityInput contains input for updating a liability
type UpdateLiabilityInput struct {
	Name           *string
	Amount         *decimal.Decimal
	InterestRate   *decimal.Decimal
	MonthlyPayment *decimal.Decimal
}

// UpdateLiability updates a liability's editable fields
func (s *LiabilityService) UpdateLiability(workspaceID int32, id uuid.UUID, input UpdateLiabilityInput) (*domain.Liability, error) {
	liability, err := s.liabilityRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if liability.IsArchived {
		return nil, domain.ErrLiabilityArchived
	}

	if input.Name != nil {
		liability.Name = strings.TrimSpace(*input.Name)
	}
	if input.Amount != nil {
		liability.Amount = *input.Amount
	}
	if input.InterestRate != nil {
		liability.InterestRate = input.InterestRate
	}
	if input.MonthlyPayment != nil {
		liability.MonthlyPayment = input.MonthlyPayment
	}
	if err := liability.Validate(); err != nil {
		return nil, err
	}

	return s.liabilityRepo.Update(liability)
}

// ArchiveLiability closes a liability, excluding it from planning and active
// totals. Archiving is caller-driven: paying a balance down to zero makes a
// liability eligible but never archives it automatically.
func (s *LiabilityService) ArchiveLiability(workspaceID int32, id uuid.UUID) (*domain.Liability, error) {
	liability, err := s.liabilityRepo.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if liability.IsArchived {
		return liability, nil
	}
	return s.liabilityRepo.Archive(workspaceID, id, time.Now())
}

// DeleteLiability deletes a liability
func (s *LiabilityService) DeleteLiability(workspaceID int32, id uuid.UUID) error {
	if _, err := s.liabilityRepo.GetByID(workspaceID, id); err != nil {
		return err
	}
	return s.liabilityRepo.Delete(workspaceID, id)
}
