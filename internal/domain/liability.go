package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrLiabilityNotFound       = errors.New("liability not found")
	ErrLiabilityNameEmpty      = errors.New("liability name is required")
	ErrLiabilityNameTooLong    = errors.New("liability name must be 200 characters or less")
	ErrLiabilityAmountNegative = errors.New("liability amount must not be negative")
	ErrLiabilityRateNegative   = errors.New("interest rate must not be negative")
	ErrLiabilityPaymentInvalid = errors.New("monthly payment must be positive")
	ErrLiabilityArchived       = errors.New("liability is archived")
)

// LiabilityType categorizes a debt. The set is open; these are the values the
// UI currently offers.
type LiabilityType string

const (
	LiabilityCreditCard LiabilityType = "credit_card"
	LiabilityLoan       LiabilityType = "loan"
)

// Derived minimum payment when no contractual payment is set: 2% of the
// outstanding balance with an absolute floor.
var (
	defaultMinimumRate  = decimal.NewFromFloat(0.02)
	defaultMinimumFloor = decimal.NewFromInt(25)
)

// Liability is a debt owed by the user: a credit card balance, a loan, etc.
type Liability struct {
	ID             uuid.UUID        `json:"id"`
	WorkspaceID    int32            `json:"workspaceId"`
	Name           string           `json:"name"`
	Type           LiabilityType    `json:"type"`
	Amount         decimal.Decimal  `json:"amount"`
	OriginalAmount decimal.Decimal  `json:"originalAmount"`
	InterestRate   *decimal.Decimal `json:"interestRate,omitempty"`
	MonthlyPayment *decimal.Decimal `json:"monthlyPayment,omitempty"`
	IsArchived     bool             `json:"isArchived"`
	ArchivedAt     *time.Time       `json:"archivedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

func (l *Liability) Validate() error {
	if l.Name == "" {
		return ErrLiabilityNameEmpty
	}
	if len(l.Name) > 200 {
		return ErrLiabilityNameTooLong
	}
	if l.Amount.IsNegative() {
		return ErrLiabilityAmountNegative
	}
	if l.InterestRate != nil && l.InterestRate.IsNegative() {
		return ErrLiabilityRateNegative
	}
	if l.MonthlyPayment != nil && l.MonthlyPayment.LessThanOrEqual(decimal.Zero) {
		return ErrLiabilityPaymentInvalid
	}
	return nil
}

// AnnualRate returns the nominal annual percentage rate. A missing rate means
// the debt is interest-free.
func (l *Liability) AnnualRate() decimal.Decimal {
	if l.InterestRate == nil {
		return decimal.Zero
	}
	return *l.InterestRate
}

// MinimumPayment resolves the contractual monthly payment, falling back to the
// derived floor (2% of balance, at least 25.00) when none is set. The floor is
// capped at the outstanding balance so a nearly-cleared debt is never asked to
// overpay; a zero balance yields a zero minimum.
func (l *Liability) MinimumPayment() decimal.Decimal {
	if l.MonthlyPayment != nil {
		return *l.MonthlyPayment
	}
	floor := l.Amount.Mul(defaultMinimumRate)
	if floor.LessThan(defaultMinimumFloor) {
		floor = defaultMinimumFloor
	}
	if floor.GreaterThan(l.Amount) {
		floor = l.Amount
	}
	return floor.Round(2)
}

// Baseline returns the amount progress is measured against: the original
// amount when recorded, otherwise the current balance. Liabilities created
// before original amounts were tracked report 0% progress until further
// payments land, which is the accepted behavior for legacy data.
func (l *Liability) Baseline() decimal.Decimal {
	if l.OriginalAmount.GreaterThan(decimal.Zero) {
		return l.OriginalAmount
	}
	return l.Amount
}

// LiabilityRepository defines the interface for liability persistence operations
type LiabilityRepository interface {
	Create(liability *Liability) (*Liability, error)
	GetByID(workspaceID int32, id uuid.UUID) (*Liability, error)
	GetAllByWorkspace(workspaceID int32, includeArchived bool) ([]*Liability, error)
	Update(liability *Liability) (*Liability, error)
	Archive(workspaceID int32, id uuid.UUID, archivedAt time.Time) (*Liability, error)
	Delete(workspaceID int32, id uuid.UUID) error
}
