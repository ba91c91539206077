package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"saasquatch/models"
	"saasquatch/store"
	"saasquatch/utils"

	"github.com/getsentry/sentry-go"
)

// DispatchWorker is the perpetual background loop that pulls due queue items
// and executes them by channel. One instance per process; running more than
// one against the same store would duplicate sends because selection and
// status flip are not a single atomic claim.
type DispatchWorker struct {
	Queue  *store.QueueStore
	Mailer utils.MailSender
	Logger *log.Logger

	Interval  time.Duration
	BatchSize int

	// Now is the clock; tests freeze it.
	Now func() time.Time
}

func NewDispatchWorker(qs *store.QueueStore, mailer utils.MailSender, logger *log.Logger, interval time.Duration, batchSize int) *DispatchWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &DispatchWorker{
		Queue:     qs,
		Mailer:    mailer,
		Logger:    logger,
		Interval:  interval,
		BatchSize: batchSize,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start runs until ctx is cancelled. The first cycle runs immediately; the
// interval sleep happens after processing. Any cycle-level error is logged
// and the loop carries on; the worker has no fatal error path.
func (dw *DispatchWorker) Start(ctx context.Context) {
	dw.Logger.Printf("Dispatch worker started (interval %s, batch %d)", dw.Interval, dw.BatchSize)

	ticker := time.NewTicker(dw.Interval)
	defer ticker.Stop()

	for {
		if err := dw.RunCycle(ctx); err != nil {
			dw.Logger.Printf("Dispatch cycle error: %v", err)
			if sentry.CurrentHub().Client() != nil {
				sentry.CaptureException(err)
			}
		}

		select {
		case <-ctx.Done():
			dw.Logger.Println("Dispatch worker shutting down...")
			return
		case <-ticker.C:
		}
	}
}

// RunCycle selects one batch of due items and processes each in isolation:
// one item's failure never aborts the rest of the batch.
func (dw *DispatchWorker) RunCycle(ctx context.Context) error {
	now := dw.Now()

	items, err := dw.Queue.FindDue(now, dw.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to query due queue items: %w", err)
	}

	for _, item := range items {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		dw.processItem(item, now)
	}

	return nil
}

func (dw *DispatchWorker) processItem(item models.QueueItem, now time.Time) {
	switch item.Channel {
	case models.StepTypeEmail:
		dw.sendEmailItem(item, now)

	case models.StepTypeLinkedIn, models.StepTypeManual:
		// No automatic transport for these channels; task_created marks the
		// hand-off to a human, not a delivery.
		if err := dw.Queue.MarkTaskCreated(item.ItemID, now); err != nil {
			dw.Logger.Printf("Failed to mark item %s task_created: %v", item.ItemID, err)
		}

	default:
		if err := dw.Queue.MarkFailed(item.ItemID, fmt.Sprintf("Unknown channel %s", item.Channel)); err != nil {
			dw.Logger.Printf("Failed to mark item %s failed: %v", item.ItemID, err)
		}
	}
}

func (dw *DispatchWorker) sendEmailItem(item models.QueueItem, now time.Time) {
	to := item.Contact.Email
	if to == "" {
		if err := dw.Queue.MarkFailed(item.ItemID, "No recipient email"); err != nil {
			dw.Logger.Printf("Failed to mark item %s failed: %v", item.ItemID, err)
		}
		return
	}

	if err := dw.Mailer.Send(to, item.Subject, item.Content); err != nil {
		dw.Logger.Printf("Send failed for item %s: %v", item.ItemID, err)
		if err := dw.Queue.MarkFailed(item.ItemID, err.Error()); err != nil {
			dw.Logger.Printf("Failed to mark item %s failed: %v", item.ItemID, err)
		}
		return
	}

	if err := dw.Queue.MarkSent(item.ItemID, now); err != nil {
		dw.Logger.Printf("Failed to mark item %s sent: %v", item.ItemID, err)
		return
	}
	if err := dw.Queue.IncrementSent(item.SequenceID); err != nil {
		dw.Logger.Printf("Failed to increment sent metric for sequence %s: %v", item.SequenceID, err)
	}
}
