package postgres

import (
	"context"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DebtPaymentRepository implements domain.DebtPaymentRepository using PostgreSQL
type DebtPaymentRepository struct {
	pool *pgxpool.Pool
}

// NewDebtPaymentRepository creates a new DebtPaymentRepository
func NewDebtPaymentRepository(pool *pgxpool.Pool) *DebtPaymentRepository {
	return &DebtPaymentRepository{pool: pool}
}

const debtPaymentColumns = `id, liability_id, amount, payment_type, description, payment_date, created_at`

// Create records a new payment
func (r *DebtPaymentRepository) Create(payment *domain.DebtPayment) (*domain.DebtPayment, error) {
	ctx := context.Background()

	amount, err := decimalToNumeric(payment.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO debt_payments (id, liability_id, amount, payment_type, description, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+debtPaymentColumns,
		uuid.New(), payment.LiabilityID, amount, string(payment.PaymentType),
		ptrToText(payment.Description), payment.PaymentDate,
	)
	return scanDebtPayment(row)
}

// GetByLiabilityID retrieves all payments recorded against a liability,
// oldest first
func (r *DebtPaymentRepository) GetByLiabilityID(liabilityID uuid.UUID) ([]*domain.DebtPayment, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+debtPaymentColumns+`
		FROM debt_payments
		WHERE liability_id = $1
		ORDER BY payment_date, created_at`,
		liabilityID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*domain.DebtPayment
	for rows.Next() {
		payment, err := scanDebtPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func scanDebtPayment(row pgx.Row) (*domain.DebtPayment, error) {
	var (
		payment     domain.DebtPayment
		paymentType string
		amount      pgtype.Numeric
		description pgtype.Text
	)

	err := row.Scan(
		&payment.ID, &payment.LiabilityID, &amount, &paymentType,
		&description, &payment.PaymentDate, &payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	payment.PaymentType = domain.PaymentType(paymentType)
	if payment.Amount, err = numericToDecimal(amount); err != nil {
		return nil, err
	}
	payment.Description = textToPtr(description)
	return &payment, nil
}
