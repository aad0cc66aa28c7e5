package service

import (
	"time"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DebtPaymentService records payments against liabilities. This is the one
// place liability balances are mutated; the planning engine only ever reads
// them.
type DebtPaymentService struct {
	paymentRepo   domain.DebtPaymentRepository
	liabilityRepo domain.LiabilityRepository
}

// NewDebtPaymentService creates a new DebtPaymentService
func NewDebtPaymentService(paymentRepo domain.DebtPaymentRepository, liabilityRepo domain.LiabilityRepository) *DebtPaymentService {
	return &DebtPaymentService{
		paymentRepo:   paymentRepo,
		liabilityRepo: liabilityRepo,
	}
}

// RecordPaymentInput contains input for recording a payment
type RecordPaymentInput struct {
	Amount      decimal.Decimal
	PaymentType domain.PaymentType
	Description *string
	PaymentDate time.Time
}

// RecordPaymentResult is the recorded payment together with the liability
// state it left behind.
type RecordPaymentResult struct {
	Payment   *domain.DebtPayment
	Liability *domain.Liability
}

// RecordPayment records a payment against a liability. Regular and extra
// payments reduce the outstanding balance, floored at zero; interest-only
// payments are history without principal reduction. A balance that reaches
// zero makes the liability eligible for archiving but does not archive it.
func (s *DebtPaymentService) RecordPayment(workspaceID int32, liabilityID uuid.UUID, input RecordPaymentInput) (*RecordPaymentResult, error) {
	liability, err := s.liabilityRepo.GetByID(workspaceID, liabilityID)
	if err != nil {
		return nil, err
	}
	if liability.IsArchived {
		return nil, domain.ErrLiabilityArchived
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &domain.DebtPayment{
		LiabilityID: liabilityID,
		Amount:      input.Amount,
		PaymentType: input.PaymentType,
		Description: input.Description,
		PaymentDate: paymentDate,
	}
	if err := payment.Validate(); err != nil {
		return nil, err
	}

	created, err := s.paymentRepo.Create(payment)
	if err != nil {
		return nil, err
	}

	if payment.ReducesPrincipal() {
		newAmount := liability.Amount.Sub(payment.Amount)
		if newAmount.IsNegative() {
			newAmount = decimal.Zero
		}
		liability.Amount = newAmount
		liability, err = s.liabilityRepo.Update(liability)
		if err != nil {
			return nil, err
		}
		if liability.Amount.IsZero() {
			log.Info().Str("liability_id", liabilityID.String()).Msg("Liability fully paid, eligible for archiving")
		}
	}

	return &RecordPaymentResult{Payment: created, Liability: liability}, nil
}

// GetPayments retrieves the payment history for a liability
func (s *DebtPaymentService) GetPayments(workspaceID int32, liabilityID uuid.UUID) ([]*domain.DebtPayment, error) {
	if _, err := s.liabilityRepo.GetByID(workspaceID, liabilityID); err != nil {
		return nil, err
	}
	return s.paymentRepo.GetByLiabilityID(liabilityID)
}
