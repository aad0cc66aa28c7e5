package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/debtwise/debtwise-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LiabilityRepository implements domain.LiabilityRepository using PostgreSQL
type LiabilityRepository struct {
	pool *pgxpool.Pool
}

// NewLiabilityRepository creates a new LiabilityRepository
func NewLiabilityRepository(pool *pgxpool.Pool) *LiabilityRepository {
	return &LiabilityRepository{pool: pool}
}

const liabilityColumns = `id, workspace_id, name, type, amount, original_amount,
	interest_rate, monthly_payment, is_archived, archived_at, created_at, updated_at`

// Create creates a new liability
func (r *LiabilityRepository) Create(liability *domain.Liability) (*domain.Liability, error) {
	ctx := context.Background()

	amount, err := decimalToNumeric(liability.Amount)
	if err != nil {
		return nil, err
	}
	originalAmount, err := decimalToNumeric(liability.OriginalAmount)
	if err != nil {
		return nil, err
	}
	interestRate, err := decimalPtrToNumeric(liability.InterestRate)
	if err != nil {
		return nil, err
	}
	monthlyPayment, err := decimalPtrToNumeric(liability.MonthlyPayment)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO liabilities (id, workspace_id, name, type, amount, original_amount, interest_rate, monthly_payment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+liabilityColumns,
		uuid.New(), liability.WorkspaceID, liability.Name, string(liability.Type),
		amount, originalAmount, interestRate, monthlyPayment,
	)
	return scanLiability(row)
}

// GetByID retrieves a liability by its ID within a workspace
func (r *LiabilityRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.Liability, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		SELECT `+liabilityColumns+`
		FROM liabilities
		WHERE id = $1 AND workspace_id = $2`,
		id, workspaceID,
	)
	liability, err := scanLiability(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLiabilityNotFound
		}
		return nil, err
	}
	return liability, nil
}

// GetAllByWorkspace retrieves liabilities for a workspace, optionally
// including archived ones
func (r *LiabilityRepository) GetAllByWorkspace(workspaceID int32, includeArchived bool) ([]*domain.Liability, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+liabilityColumns+`
		FROM liabilities
		WHERE workspace_id = $1 AND ($2 OR NOT is_archived)
		ORDER BY created_at`,
		workspaceID, includeArchived,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var liabilities []*domain.Liability
	for rows.Next() {
		liability, err := scanLiability(rows)
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, liability)
	}
	return liabilities, rows.Err()
}

// Update updates a liability's mutable fields
func (r *LiabilityRepository) Update(liability *domain.Liability) (*domain.Liability, error) {
	ctx := context.Background()

	amount, err := decimalToNumeric(liability.Amount)
	if err != nil {
		return nil, err
	}
	interestRate, err := decimalPtrToNumeric(liability.InterestRate)
	if err != nil {
		return nil, err
	}
	monthlyPayment, err := decimalPtrToNumeric(liability.MonthlyPayment)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE liabilities
		SET name = $3, amount = $4, interest_rate = $5, monthly_payment = $6, updated_at = now()
		WHERE id = $1 AND workspace_id = $2
		RETURNING `+liabilityColumns,
		liability.ID, liability.WorkspaceID, liability.Name, amount, interestRate, monthlyPayment,
	)
	updated, err := scanLiability(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLiabilityNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Archive marks a liability as archived at the given time
func (r *LiabilityRepository) Archive(workspaceID int32, id uuid.UUID, archivedAt time.Time) (*domain.Liability, error) {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		UPDATE liabilities
		SET is_archived = TRUE, archived_at = $3, updated_at = now()
		WHERE id = $1 AND workspace_id = $2
		RETURNING `+liabilityColumns,
		id, workspaceID, archivedAt,
	)
	liability, err := scanLiability(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLiabilityNotFound
		}
		return nil, err
	}
	return liability, nil
}

// Delete removes a liability and its payment history
func (r *LiabilityRepository) Delete(workspaceID int32, id uuid.UUID) error {
	ctx := context.Background()
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM liabilities
		WHERE id = $1 AND workspace_id = $2`,
		id, workspaceID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLiabilityNotFound
	}
	return nil
}

func scanLiability(row pgx.Row) (*domain.Liability, error) {
	var (
		liability      domain.Liability
		liabilityType  string
		amount         pgtype.Numeric
		originalAmount pgtype.Numeric
		interestRate   pgtype.Numeric
		monthlyPayment pgtype.Numeric
		archivedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&liability.ID, &liability.WorkspaceID, &liability.Name, &liabilityType,
		&amount, &originalAmount, &interestRate, &monthlyPayment,
		&liability.IsArchived, &archivedAt, &liability.CreatedAt, &liability.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	liability.Type = domain.LiabilityType(liabilityType)
	if liability.Amount, err = numericToDecimal(amount); err != nil {
		return nil, err
	}
	if liability.OriginalAmount, err = numericToDecimal(originalAmount); err != nil {
		return nil, err
	}
	if liability.InterestRate, err = numericToDecimalPtr(interestRate); err != nil {
		return nil, err
	}
	if liability.MonthlyPayment, err = numericToDecimalPtr(monthlyPayment); err != nil {
		return nil, err
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		liability.ArchivedAt = &t
	}
	return &liability, nil
}
