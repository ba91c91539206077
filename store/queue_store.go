package store

import (
	"time"

	"saasquatch/models"

	"gorm.io/gorm"
)

// QueueStore owns all persistence for queue items plus the sequence counter
// the dispatcher increments. It is the single source of truth for item
// status; callers never hand queue items to each other by reference.
type QueueStore struct {
	DB *gorm.DB
}

func NewQueueStore(db *gorm.DB) *QueueStore {
	return &QueueStore{DB: db}
}

// InsertMany writes a batch of freshly built items.
func (qs *QueueStore) InsertMany(items []models.QueueItem) error {
	if len(items) == 0 {
		return nil
	}
	return qs.DB.Create(&items).Error
}

// ReplaceForSequence swaps a sequence's entire queue for a newly built one.
// Delete and insert run in one transaction so readers never observe a
// partially built queue.
func (qs *QueueStore) ReplaceForSequence(sequenceID string, items []models.QueueItem) error {
	return qs.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sequence_id = ?", sequenceID).Delete(&models.QueueItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// DeleteForSequence removes every item belonging to a sequence.
func (qs *QueueStore) DeleteForSequence(sequenceID string) error {
	return qs.DB.Where("sequence_id = ?", sequenceID).Delete(&models.QueueItem{}).Error
}

// FindDue returns up to limit pending items scheduled at or before now,
// oldest first. Ascending order keeps dispatch deterministic and fair.
func (qs *QueueStore) FindDue(now time.Time, limit int) ([]models.QueueItem, error) {
	var items []models.QueueItem
	err := qs.DB.
		Where("status = ? AND scheduled_at <= ?", models.QueueStatusPending, now).
		Order("scheduled_at asc").
		Limit(limit).
		Find(&items).Error
	return items, err
}

// ListForSequence returns a sequence's full queue sorted by due time.
func (qs *QueueStore) ListForSequence(sequenceID string) ([]models.QueueItem, error) {
	var items []models.QueueItem
	err := qs.DB.
		Where("sequence_id = ?", sequenceID).
		Order("scheduled_at asc").
		Find(&items).Error
	return items, err
}

// MarkSent records a successful email delivery.
func (qs *QueueStore) MarkSent(itemID string, at time.Time) error {
	return qs.DB.Model(&models.QueueItem{}).
		Where("item_id = ?", itemID).
		Updates(map[string]interface{}{
			"status":  models.QueueStatusSent,
			"sent_at": at,
		}).Error
}

// MarkFailed records a terminal per-item failure with its reason.
func (qs *QueueStore) MarkFailed(itemID, reason string) error {
	return qs.DB.Model(&models.QueueItem{}).
		Where("item_id = ?", itemID).
		Updates(map[string]interface{}{
			"status":     models.QueueStatusFailed,
			"last_error": reason,
		}).Error
}

// MarkTaskCreated records that a linkedin/manual item was handed off to a
// human.
func (qs *QueueStore) MarkTaskCreated(itemID string, at time.Time) error {
	return qs.DB.Model(&models.QueueItem{}).
		Where("item_id = ?", itemID).
		Updates(map[string]interface{}{
			"status":  models.QueueStatusTaskCreated,
			"sent_at": at,
		}).Error
}

// TransitionStatus bulk-flips all of a sequence's items in status from to
// status to. Pause uses pending -> pending_paused; resume reverses it.
// Terminal items are never touched because they are never in either state.
func (qs *QueueStore) TransitionStatus(sequenceID, from, to string) error {
	return qs.DB.Model(&models.QueueItem{}).
		Where("sequence_id = ? AND status = ?", sequenceID, from).
		Update("status", to).Error
}

// IncrementSent bumps the owning sequence's sent counter atomically in the
// database; a read-modify-write here would race concurrent item sends.
func (qs *QueueStore) IncrementSent(sequenceID string) error {
	return qs.DB.Model(&models.Sequence{}).
		Where("sequence_id = ?", sequenceID).
		UpdateColumn("metrics_sent", gorm.Expr("metrics_sent + ?", 1)).Error
}
