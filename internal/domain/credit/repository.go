package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cred *Credit) (*Credit, error)

	FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error)

	FindAllByCustomerID(ctx context.Context, customerID int64) ([]*Credit, error)

	// FindExpiredInProgress returns credits still IN_PROGRESS whose first
	// installment date is already behind asOf. Used by the review job.
	FindExpiredInProgress(ctx context.Context, asOf time.Time) ([]*Credit, error)

	UpdateStatus(ctx context.Context, creditID int64, status Status) error
}
