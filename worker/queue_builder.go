package worker

import (
	"fmt"
	"log"
	"time"

	"saasquatch/models"
	"saasquatch/utils"

	"github.com/google/uuid"
)

// BuildQueueItems materializes one queue item per (step, contact) pair with a
// computed due time. The time origin is the sequence's started_at when set,
// otherwise now; the caller persists that choice on first activation. The
// function is deterministic for a fixed (sequence, now) apart from the fresh
// item ids.
//
// Each step's delay_days accumulates on top of the previous step, so due
// times are non-decreasing in step order for every contact. A step's
// send_time ("HH:MM") overwrites the due time-of-day, leaving the date alone.
func BuildQueueItems(seq *models.Sequence, now time.Time, logger *log.Logger) []models.QueueItem {
	startedAt := now
	if seq.StartedAt != nil {
		startedAt = *seq.StartedAt
	}

	items := make([]models.QueueItem, 0, len(seq.Steps)*len(seq.Contacts))

	cumulativeDays := 0
	for _, step := range seq.Steps {
		if step.DelayDays > 0 {
			cumulativeDays += step.DelayDays
		}

		due := startedAt.Add(time.Duration(cumulativeDays) * 24 * time.Hour)
		if step.SendTime != "" {
			if tod, err := time.Parse("15:04", step.SendTime); err == nil {
				due = time.Date(due.Year(), due.Month(), due.Day(),
					tod.Hour(), tod.Minute(), 0, 0, due.Location())
			} else if logger != nil {
				// Malformed send_time is not fatal; the step keeps the
				// time-of-day inherited from the start time.
				logger.Printf("Ignoring malformed send_time %q on step %s: %v", step.SendTime, step.StepID, err)
			}
		}

		for _, contact := range seq.Contacts {
			items = append(items, models.QueueItem{
				ItemID:      uuid.New().String(),
				SequenceID:  seq.SequenceID,
				StepID:      step.StepID,
				Contact:     contact, // snapshot copy, by value
				Channel:     step.Type,
				Subject:     utils.RenderTemplate(step.Subject, contact),
				Content:     utils.RenderTemplate(step.Content, contact),
				ScheduledAt: due,
				Status:      models.QueueStatusPending,
			})
		}
	}

	return items
}

// RebuildQueue builds a sequence's queue and swaps it in as one operation,
// discarding whatever was there before.
func RebuildQueue(qs QueueReplacer, seq *models.Sequence, now time.Time, logger *log.Logger) error {
	items := BuildQueueItems(seq, now, logger)
	if err := qs.ReplaceForSequence(seq.SequenceID, items); err != nil {
		return fmt.Errorf("failed to replace queue for sequence %s: %w", seq.SequenceID, err)
	}
	return nil
}

// QueueReplacer is the slice of the queue store the builder needs.
type QueueReplacer interface {
	ReplaceForSequence(sequenceID string, items []models.QueueItem) error
}
