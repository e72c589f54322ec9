package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-system/internal/domain/credit"
	"credit-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ credit.Repository = (*CreditRepository)(nil)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	if db == nil {
		panic("DBPool cannot be nil for CreditRepository")
	}
	return &CreditRepository{
		db:     db,
		logger: logger.With("component", "CreditRepository"),
	}
}

const creditColumns = `id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at`

func (r *CreditRepository) Create(ctx context.Context, cred *credit.Credit) (*credit.Credit, error) {
	if cred == nil {
		return nil, fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new credit",
		slog.Int64("customerID", cred.CustomerID),
		slog.String("creditCode", cred.CreditCode.String()))

	query := `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cred.CreditCode,
		cred.CreditValue,
		cred.DayFirstInstallment,
		cred.NumberOfInstallments,
		cred.Status,
		cred.CustomerID,
	).Scan(
		&cred.ID,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) || errors.Is(translatedErr, apperrors.ErrConflict) {
			r.logger.WarnContext(ctx, "Failed to insert credit due to constraint violation", slog.Any("error", err))
			return nil, translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to insert credit: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", cred.ID))
	return cred, nil
}

func (r *CreditRepository) FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credit by code")

	query := `
        SELECT ` + creditColumns + `
        FROM credits
        WHERE credit_code = $1`

	var cred credit.Credit
	err := r.db.QueryRow(ctx, query, creditCode).Scan(
		&cred.ID,
		&cred.CreditCode,
		&cred.CreditValue,
		&cred.DayFirstInstallment,
		&cred.NumberOfInstallments,
		&cred.Status,
		&cred.CustomerID,
		&cred.CreatedAt,
		&cred.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit not found for code")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get credit by code: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Credit found successfully", slog.Int64("creditID", cred.ID))
	return &cred, nil
}

func (r *CreditRepository) FindAllByCustomerID(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credits by customer", slog.Int64("customerID", customerID))

	query := `
        SELECT ` + creditColumns + `
        FROM credits
        WHERE customer_id = $1
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credits by customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	return r.scanCredits(ctx, rows)
}

func (r *CreditRepository) FindExpiredInProgress(ctx context.Context, asOf time.Time) ([]*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find expired in-progress credits", slog.Time("asOf", asOf))

	query := `
        SELECT ` + creditColumns + `
        FROM credits
        WHERE status = $1 AND day_first_installment < $2
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, credit.StatusInProgress, asOf)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query expired in-progress credits", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query expired credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	return r.scanCredits(ctx, rows)
}

func (r *CreditRepository) UpdateStatus(ctx context.Context, creditID int64, status credit.Status) error {
	r.logger.InfoContext(ctx, "Attempting to update credit status",
		slog.Int64("creditID", creditID),
		slog.String("status", string(status)))

	query := `UPDATE credits SET status = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, status, creditID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute update credit status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update credit status: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update status affected zero rows, credit likely not found")
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Credit status updated successfully")
	return nil
}

func (r *CreditRepository) scanCredits(ctx context.Context, rows pgx.Rows) ([]*credit.Credit, error) {
	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		var cred credit.Credit
		err := rows.Scan(
			&cred.ID,
			&cred.CreditCode,
			&cred.CreditValue,
			&cred.DayFirstInstallment,
			&cred.NumberOfInstallments,
			&cred.Status,
			&cred.CustomerID,
			&cred.CreatedAt,
			&cred.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan credit row: %w", apperrors.ErrDatabase, err)
		}
		credits = append(credits, &cred)
	}

	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating credit rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating credit rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding credits", slog.Int("count", len(credits)))
	return credits, nil
}
