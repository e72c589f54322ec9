package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-system/internal/event"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"
)

type CustomerService interface {
	RegisterCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, patch Patch) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.ID,
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		Email:      cust.Email,
		CreateDate: cust.CreatedAt,
	}
}

func (s *customerService) RegisterCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to register new customer")

	if cust == nil {
		return nil, fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	s.logger.InfoContext(ctx, "Calling repository Save", slog.String("cpf", cust.CPF))
	err := s.repo.Save(ctx, cust)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Duplicate cpf or email detected during save", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	monitoring.RecordCustomerRegistered()
	s.logger.InfoContext(ctx, "Successfully registered customer, publishing creation event", slog.Int64("customerID", cust.ID))

	if s.pub != nil {
		createdEvent := event.CustomerCreatedEvent{
			Timestamp: time.Now(),
			Payload:   NewCustomerEventPayload(cust),
		}
		if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
			s.logger.ErrorContext(ctx, "Customer registered, but FAILED to publish creation event", slog.Any("error", pubErr))
		}
	}

	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by repository")
			// Absence at the storage layer becomes a named business
			// failure here, callers never see a bare missing-row signal.
			return nil, fmt.Errorf("%w: customer with id %d not found", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by ID", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully found customer")
	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to list customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully listed customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, patch Patch) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	if err := patch.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Patch validation failed", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	cust.Apply(patch)

	err = s.repo.Save(ctx, cust)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	// Reuses GetCustomer's not-found semantics before removal.
	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	// Owned credits are removed with the customer in the same statement
	// through the credits.customer_id ON DELETE CASCADE constraint.
	err = s.repo.Delete(ctx, cust.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer disappeared before delete could complete")
			return fmt.Errorf("%w: customer with id %d not found", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	monitoring.RecordCustomerDeleted()
	s.logger.InfoContext(ctx, "Successfully deleted customer")

	if s.pub != nil {
		deletedEvent := event.CustomerDeletedEvent{
			CustomerID: customerID,
			Timestamp:  time.Now(),
		}
		if pubErr := s.pub.PublishCustomerDeleted(ctx, deletedEvent); pubErr != nil {
			s.logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
		}
	}

	return nil
}
