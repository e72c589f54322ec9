package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-system/internal/domain/customer"
	"credit-system/internal/event"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CreditService interface {
	IssueCredit(ctx context.Context, cred *Credit) (*Credit, error)

	FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)

	FindByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)
}

type creditServiceImpl struct {
	repo            Repository
	customerService customer.CustomerService
	pub             event.EventPublisher
	logger          *slog.Logger
}

var _ CreditService = (*creditServiceImpl)(nil)

func NewCreditService(r Repository, cs customer.CustomerService, eventPublisher event.EventPublisher, logger *slog.Logger) CreditService {
	if r == nil {
		panic("credit repository cannot be nil")
	}
	if cs == nil {
		panic("customer service cannot be nil")
	}
	return &creditServiceImpl{
		repo:            r,
		customerService: cs,
		pub:             eventPublisher,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditServiceImpl) IssueCredit(ctx context.Context, cred *Credit) (*Credit, error) {
	s.logger.InfoContext(ctx, "Issuing new credit", slog.Int64("customerID", cred.CustomerID))

	// The owning customer must already exist; a missing customer is the
	// caller's not-found failure, not a constraint violation.
	if _, err := s.customerService.GetCustomer(ctx, cred.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit owner not found", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to verify credit owner", slog.Any("error", err))
		return nil, fmt.Errorf("failed to verify customer %d: %w", cred.CustomerID, err)
	}

	// Construction-time invariants are re-checked here so a credit built
	// outside NewCredit cannot slip past the issuance window.
	if !cred.CreditValue.IsPositive() {
		return nil, apperrors.NewValidationError("creditValue", "credit value must be positive")
	}
	if cred.NumberOfInstallments <= 0 {
		return nil, apperrors.NewValidationError("numberOfInstallments", "number of installments must be positive")
	}
	if err := ValidateFirstInstallment(cred.DayFirstInstallment, time.Now()); err != nil {
		s.logger.WarnContext(ctx, "First installment date outside allowed window", slog.Any("error", err))
		return nil, err
	}

	cred.CreditCode = uuid.New()
	cred.Status = StatusInProgress

	created, err := s.repo.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			s.logger.WarnContext(ctx, "Credit code collision detected during insert", slog.Any("error", err))
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Repository failed to create credit", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create credit: %w", err)
	}

	monitoring.RecordCreditIssued()
	s.logger.InfoContext(ctx, "Credit issued successfully",
		slog.Int64("creditID", created.ID),
		slog.String("creditCode", created.CreditCode.String()))

	if s.pub != nil {
		issuedEvent := event.CreditIssuedEvent{
			Timestamp: time.Now(),
			Payload:   NewCreditEventPayload(created),
		}
		if pubErr := s.pub.PublishCreditIssued(ctx, issuedEvent); pubErr != nil {
			s.logger.ErrorContext(ctx, "Credit issued, but FAILED to publish issuance event", slog.Any("error", pubErr))
		}
	}

	return created, nil
}

func (s *creditServiceImpl) FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	s.logger.InfoContext(ctx, "Listing credits for customer", slog.Int64("customerID", customerID))

	// An unknown customer simply owns nothing; this lookup never fails
	// with not-found.
	credits, err := s.repo.FindAllByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing credits by customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Credits listed successfully", slog.Int("count", len(credits)))
	return credits, nil
}

func (s *creditServiceImpl) FindByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	s.logger.InfoContext(ctx, "Finding credit by code",
		slog.Int64("customerID", customerID),
		slog.String("creditCode", creditCode.String()))

	cred, err := s.repo.FindByCreditCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit code not found")
			return nil, fmt.Errorf("%w: credit code %s not found", apperrors.ErrNotFound, creditCode)
		}
		s.logger.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find credit %s: %w", creditCode, err)
	}

	// Ownership scoping: the code resolving is not enough, the caller must
	// also be its owner. A mismatch is deliberately NOT a not-found so the
	// two failures stay distinguishable.
	if cred.CustomerID != customerID {
		s.logger.WarnContext(ctx, "Credit code belongs to a different customer",
			slog.Int64("ownerID", cred.CustomerID))
		return nil, fmt.Errorf("%w: credit code %s does not belong to customer %d",
			apperrors.ErrInvalidArgument, creditCode, customerID)
	}

	s.logger.InfoContext(ctx, "Credit found successfully", slog.Int64("creditID", cred.ID))
	return cred, nil
}

func NewCreditEventPayload(cred *Credit) event.CreditEventPayload {
	if cred == nil {
		return event.CreditEventPayload{}
	}
	return event.CreditEventPayload{
		CreditID:             cred.ID,
		CreditCode:           cred.CreditCode.String(),
		CustomerID:           cred.CustomerID,
		CreditValue:          cred.CreditValue.StringFixed(2),
		NumberOfInstallments: cred.NumberOfInstallments,
		DayFirstInstallment:  cred.DayFirstInstallment,
		Status:               string(cred.Status),
	}
}
