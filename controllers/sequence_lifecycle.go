package controller

import (
	"time"

	"saasquatch/models"
	"saasquatch/utils"
	"saasquatch/worker"

	"github.com/gofiber/fiber/v2"
)

// StartSequence activates a sequence and (re)builds its queue. started_at is
// set exactly once, on the first activation; it is the time origin for every
// due-time computation afterwards. Queue building is best-effort: a build
// failure is logged and the sequence still becomes active, since the queue
// can be rebuilt later via requeue.
func (sc *SequenceController) StartSequence(c *fiber.Ctx) error {
	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}

	now := time.Now().UTC()
	seq.Status = models.SequenceStatusActive
	if seq.StartedAt == nil {
		seq.StartedAt = utils.Pointer(now)
	}

	if err := sc.DB.Save(seq).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to start sequence", err)
	}

	if err := worker.RebuildQueue(sc.Queue, seq, now, sc.Logger); err != nil {
		sc.Logger.Printf("Failed to enqueue sends for sequence %s: %v", seq.SequenceID, err)
	}

	return c.JSON(seq)
}

// PauseSequence freezes dispatch without touching due times: pending items
// flip to pending_paused so the dispatcher stops selecting them. Items
// already sent, failed or handed off stay as they are.
func (sc *SequenceController) PauseSequence(c *fiber.Ctx) error {
	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}

	seq.Status = models.SequenceStatusPaused
	if err := sc.DB.Save(seq).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to pause sequence", err)
	}

	if err := sc.Queue.TransitionStatus(seq.SequenceID, models.QueueStatusPending, models.QueueStatusPendingPaused); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to pause queue items", err)
	}

	return c.JSON(seq)
}

// ResumeSequence reverses a pause: pending_paused items flip back to pending
// with their original scheduled_at intact, so overdue items go out on the
// next dispatch cycle.
func (sc *SequenceController) ResumeSequence(c *fiber.Ctx) error {
	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}

	seq.Status = models.SequenceStatusActive
	if err := sc.DB.Save(seq).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resume sequence", err)
	}

	if err := sc.Queue.TransitionStatus(seq.SequenceID, models.QueueStatusPendingPaused, models.QueueStatusPending); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to resume queue items", err)
	}

	return c.JSON(seq)
}

// RequeueSequence rebuilds the queue from the sequence's current steps,
// contacts and started_at, discarding the previous queue entirely, including
// the history of already-sent items.
func (sc *SequenceController) RequeueSequence(c *fiber.Ctx) error {
	seq, err := sc.findSequence(c.Params("id"))
	if err != nil {
		return sequenceLookupError(c, err)
	}

	if err := worker.RebuildQueue(sc.Queue, seq, time.Now().UTC(), sc.Logger); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to rebuild queue", err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// DeleteSequence removes a sequence and cascades to its queue items
func (sc *SequenceController) DeleteSequence(c *fiber.Ctx) error {
	sequenceID := c.Params("id")

	tx := sc.DB.Begin()

	if err := tx.Where("sequence_id = ?", sequenceID).Delete(&models.QueueItem{}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete queue items", err)
	}

	result := tx.Where("sequence_id = ?", sequenceID).Delete(&models.Sequence{})
	if result.Error != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete sequence", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Sequence not found", nil)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete sequence", err)
	}

	return c.JSON(fiber.Map{
		"status":      "deleted",
		"sequence_id": sequenceID,
	})
}
