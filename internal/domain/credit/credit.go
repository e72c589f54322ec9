package credit

import (
	"fmt"
	"time"

	"credit-system/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxFirstInstallmentMonths bounds how far in the future the first
// installment of a new credit may fall.
const MaxFirstInstallmentMonths = 3

type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

type Credit struct {
	ID                   int64           `json:"id"`
	CreditCode           uuid.UUID       `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	DayFirstInstallment  time.Time       `json:"dayFirstInstallment"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	Status               Status          `json:"status"`
	CustomerID           int64           `json:"customerId"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// NewCredit builds an unpersisted credit in IN_PROGRESS state. The credit
// code is assigned later by the service, right before persistence.
func NewCredit(creditValue decimal.Decimal, dayFirstInstallment time.Time, numberOfInstallments int, customerID int64) (*Credit, error) {
	if !creditValue.IsPositive() {
		return nil, apperrors.NewValidationError("creditValue", "credit value must be positive")
	}
	if numberOfInstallments <= 0 {
		return nil, apperrors.NewValidationError("numberOfInstallments", "number of installments must be positive")
	}
	if customerID <= 0 {
		return nil, apperrors.NewValidationError("customerId", "customer id must be positive")
	}
	if err := ValidateFirstInstallment(dayFirstInstallment, time.Now()); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Credit{
		CreditValue:          creditValue,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: numberOfInstallments,
		Status:               StatusInProgress,
		CustomerID:           customerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// ValidateFirstInstallment enforces the issuance window: the first
// installment may fall at most MaxFirstInstallmentMonths months after the
// reference day. Exactly on the boundary is still accepted; the comparison
// is at day granularity so the time of day never matters.
func ValidateFirstInstallment(dayFirstInstallment, now time.Time) error {
	deadline := toDate(now).AddDate(0, MaxFirstInstallmentMonths, 0)
	if toDate(dayFirstInstallment).After(deadline) {
		return fmt.Errorf("%w: the first installment date must be up to %d months from today's date",
			apperrors.ErrInvalidArgument, MaxFirstInstallmentMonths)
	}
	return nil
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Reject moves an in-progress credit to REJECTED. Credits in any other
// state are left untouched.
func (c *Credit) Reject() bool {
	if c.Status != StatusInProgress {
		return false
	}
	c.Status = StatusRejected
	c.UpdatedAt = time.Now()
	return true
}

// Approve moves an in-progress credit to APPROVED.
func (c *Credit) Approve() bool {
	if c.Status != StatusInProgress {
		return false
	}
	c.Status = StatusApproved
	c.UpdatedAt = time.Now()
	return true
}
