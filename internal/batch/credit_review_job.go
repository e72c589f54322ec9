package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"credit-system/internal/domain/credit"
	"credit-system/internal/event"
	"credit-system/internal/infrastructure/monitoring"
	"credit-system/internal/pkg/apperrors"
)

// CreditReviewJob rejects credits still IN_PROGRESS once their first
// installment date has passed. It is the only place credits leave the
// IN_PROGRESS state automatically.
type CreditReviewJob struct {
	creditRepo credit.Repository
	pub        event.EventPublisher
	logger     *slog.Logger
}

func NewCreditReviewJob(creditRepo credit.Repository, eventPublisher event.EventPublisher, logger *slog.Logger) *CreditReviewJob {
	if creditRepo == nil || logger == nil {
		panic("CreditReviewJob dependencies cannot be nil")
	}
	return &CreditReviewJob{
		creditRepo: creditRepo,
		pub:        eventPublisher,
		logger:     logger.With("job", "CreditReview"),
	}
}

func (j *CreditReviewJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting credit review job.")

	expired, err := j.creditRepo.FindExpiredInProgress(ctx, startTime)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to fetch expired in-progress credits, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to fetch expired credits: %w", err)
	}
	j.logger.InfoContext(ctx, "Fetched expired in-progress credits.", slog.Int("count", len(expired)))

	if len(expired) == 0 {
		j.logger.InfoContext(ctx, "No credits to review.", slog.Duration("duration", time.Since(startTime)))
		return nil
	}

	var rejectedCount, errorCount int
	for _, cred := range expired {
		logCtx := j.logger.With(slog.Int64("creditID", cred.ID), slog.String("creditCode", cred.CreditCode.String()))

		oldStatus := cred.Status
		if !cred.Reject() {
			logCtx.DebugContext(ctx, "Credit no longer in progress, skipping.")
			continue
		}

		if err := j.creditRepo.UpdateStatus(ctx, cred.ID, credit.StatusRejected); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logCtx.WarnContext(ctx, "Credit not found during review (deleted with its customer?)", slog.Any("error", err))
			} else {
				logCtx.ErrorContext(ctx, "Failed to reject expired credit", slog.Any("error", err))
				errorCount++
			}
			continue
		}

		rejectedCount++
		monitoring.RecordCreditReview("rejected")
		logCtx.InfoContext(ctx, "Expired credit rejected.")

		if j.pub != nil {
			changedEvent := event.CreditStatusChangedEvent{
				CreditID:   cred.ID,
				CreditCode: cred.CreditCode.String(),
				OldStatus:  string(oldStatus),
				NewStatus:  string(credit.StatusRejected),
				Timestamp:  time.Now(),
			}
			if pubErr := j.pub.PublishCreditStatusChanged(ctx, changedEvent); pubErr != nil {
				logCtx.ErrorContext(ctx, "Credit rejected, but FAILED to publish status change event", slog.Any("error", pubErr))
			}
		}
	}

	j.logger.InfoContext(ctx, "Credit review job finished.",
		slog.Int("rejected", rejectedCount),
		slog.Int("errors", errorCount),
		slog.Duration("duration", time.Since(startTime)))

	if errorCount > 0 {
		return fmt.Errorf("credit review completed with %d errors", errorCount)
	}
	return nil
}
