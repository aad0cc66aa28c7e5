package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrDebtPaymentNotFound          = errors.New("debt payment not found")
	ErrDebtPaymentAmountInvalid     = errors.New("payment amount must be positive")
	ErrDebtPaymentTypeInvalid       = errors.New("unknown payment type")
	ErrDebtPaymentLiabilityRequired = errors.New("liability ID is required")
)

// PaymentType classifies a recorded payment. Interest-only payments count as
// cash paid but never reduce the liability's principal.
type PaymentType string

const (
	PaymentRegular      PaymentType = "regular"
	PaymentExtra        PaymentType = "extra"
	PaymentInterestOnly PaymentType = "interest_only"
)

// DebtPayment is an immutable payment event recorded against one liability.
type DebtPayment struct {
	ID          uuid.UUID       `json:"id"`
	LiabilityID uuid.UUID       `json:"liabilityId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentType PaymentType     `json:"paymentType"`
	Description *string         `json:"description,omitempty"`
	PaymentDate time.Time       `json:"paymentDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p *DebtPayment) Validate() error {
	if p.LiabilityID == uuid.Nil {
		return ErrDebtPaymentLiabilityRequired
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrDebtPaymentAmountInvalid
	}
	switch p.PaymentType {
	case PaymentRegular, PaymentExtra, PaymentInterestOnly:
		return nil
	default:
		return ErrDebtPaymentTypeInvalid
	}
}

// ReducesPrincipal reports whether this payment should lower the liability's
// outstanding balance.
func (p *DebtPayment) ReducesPrincipal() bool {
	return p.PaymentType != PaymentInterestOnly
}

// DebtPaymentRepository defines the interface for payment persistence operations
type DebtPaymentRepository interface {
	Create(payment *DebtPayment) (*DebtPayment, error)
	GetByLiabilityID(liabilityID uuid.UUID) ([]*DebtPayment, error)
}
