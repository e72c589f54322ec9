package customer

import (
	"context"
)

// CustomerRepository abstracts customer persistence. Implementations
// signal failures through the apperrors sentinels (ErrNotFound,
// ErrAlreadyExists).
type CustomerRepository interface {
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	Delete(ctx context.Context, customerID int64) error
}
